// internal/joint/layout.go
package joint

// Register block layout constants.
// These values mirror the RAPID program on the robot controller and MUST NOT be configurable.

// LayoutVersion identifies the block layout below.
const LayoutVersion = 1

// ---- BLOCK GEOMETRY ----

// BaseAddress is the first holding register of the block.
const BaseAddress uint16 = 100

// BlockWords is the number of 16-bit registers in one block.
const BlockWords uint16 = 18

// BlockBytes is the size of the re-linearized block.
const BlockBytes = int(BlockWords) * 2

// ---- JOINT ANGLES ----

// JointCount is the number of float32 joint angles at the start of the block.
const JointCount = 6

// JointOffset is the byte offset of joint1; joint N lives at JointOffset + (N-1)*4.
const JointOffset = 0

// ---- RESERVED: TOOL POSITION ----

// ToolOffset is the byte offset of the tool position (lpos.trans x, y, z).
// Present in every block, not decoded yet.
const ToolOffset = 24

// ToolFields is the number of float32 values reserved at ToolOffset.
const ToolFields = 3
