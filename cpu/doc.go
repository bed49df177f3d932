// Package cpu implements the processor and assembler for the ELT system.
//
// The CPU is an 8-bit machine with a 32 instruction program store, a 5-bit
// program counter, eight byte registers (r0 reads as zero), an ALU with an
// accumulator and equals/greater/less/overflow flags, and eight output
// ports. Instructions move through a four stage pipeline (fetch, decode,
// execute, write-back) one stage per clock, with no hazard detection.
//
// The assembler reads one instruction per line. Mnemonics are NOOP (NOP),
// IMM, MOV, ADD, ADDC, SHR, NOT, OUT, JMP and BIE; ADD and ADDC take an
// optional S, U or X addressing mode prefix. Operands are decimal or
// B-prefixed binary immediates, Rn registers, #n addresses and %n ports,
// and may be computed at assembly time with a $(...) expression.
//
// Source is case insensitive, except inside $(...): expressions are
// Starlark, evaluated as written, so builtins such as min and max are
// lower-case while predefined names (PROGRAM_SIZE, PORT_COUNT, ...) are
// upper-case. An expression may not contain spaces.
package cpu
