/*
Package fpubench benchmarks float32 multiplication on the processing system
(PS) of a Zynq class SoC against the same operation offloaded to a multiplier
core in the programmable logic (PL).

Each iteration reads two operands from the console, writes their IEEE-754 bit
patterns to the operand registers of the core, multiplies them locally, reads
back the core's result register and prints both results together with the
time spent on each path:

	Enter Operand A (float): 2
	Enter Operand B (float): 3.5
	Using user-defined operands:
	Operand A: 2.00
	Operand B: 3.50

	FPU Result from PL: 7.000000
	Time taken for PL FPU multiplication: 0.12 microseconds
	FPU Result from PS: 7.000000
	Time taken for PS FPU multiplication: 0.03 microseconds

The PL timing covers the operand register writes only. The start command is
not issued unless Bench.Trigger is set, so by default the PL result is
whatever value the result register already holds.

Registers are accessed through the mmio package, either mapped from /dev/mem
or simulated by the plsim package. Timings come from a timer.Counter.
*/
package fpubench
