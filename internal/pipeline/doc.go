// Package pipeline provides a framework for executing audit steps in
// sequence.
//
// An audit runs four stages: corpus read, link extraction with
// normalization, graph construction, and orphan analysis. Each stage is a
// Step that receives the shared State and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function
// calls because:
//  1. It allows easy addition/removal of steps without modifying core logic
//  2. It provides consistent error handling and logging across steps
//  3. It supports cancellation via context
//
// Extraction is the only concurrent stage; the linkage map accumulation is
// its single synchronization point, and the graph and orphan stages run
// strictly after the full map is assembled.
package pipeline
