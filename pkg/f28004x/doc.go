// Package f28004x drives TI F28004x flash banks through TI's external
// serial_flash_programmer tool instead of speaking the SCI boot protocol
// itself.
//
// A bank is declared with a COM port and, optionally, baud rate, device id,
// programmer executable and kernel image:
//
//	flash bank f28004x.flash ti_f28004x_serial 0x80000 0x40000 0 0 f28004x.cpu COM7 115200
//
// Later, the program command builds the tool's command line
//
//	"serial_flash_programmer.exe" -d f28004x -k "kernel.txt" -a "app.txt" -b 115200 -p COM7
//
// and runs it to completion. The tool erases as required, so the generic
// erase and write operations are reported as unsupported. Both images must be
// in SCI boot format (see package sciboot).
package f28004x
