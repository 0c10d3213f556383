package sema

// The two vocabularies below are closed sets: any $name outside them is
// a semantic error. Descriptions feed editor hover and completion.

// SystemFunctions maps each recognized system function to a short
// description.
var SystemFunctions = map[string]string{
	// Sampled value functions
	"rose":    "true when the expression rose in the last clock tick",
	"fell":    "true when the expression fell in the last clock tick",
	"stable":  "true when the expression kept its value across the tick",
	"past":    "sampled value of the expression a number of ticks ago",
	"changed": "true when the expression changed across the tick",
	"sampled": "value of the expression at the current sampling point",

	// Global clocking sampled value functions
	"future_gclk":   "sampled value at the next global clocking event",
	"rising_gclk":   "true on a rising edge at the global clock",
	"falling_gclk":  "true on a falling edge at the global clock",
	"steady_gclk":   "true when unchanged at the global clock",
	"changing_gclk": "true when changing at the global clock",
	"past_gclk":     "sampled value one global clock tick ago",
	"rose_gclk":     "true when the expression rose at the global clock",
	"fell_gclk":     "true when the expression fell at the global clock",
	"stable_gclk":   "true when stable at the global clock",
	"changed_gclk":  "true when changed at the global clock",

	// Math functions
	"sin":   "sine",
	"cos":   "cosine",
	"tan":   "tangent",
	"asin":  "arc sine",
	"acos":  "arc cosine",
	"atan":  "arc tangent",
	"atan2": "arc tangent of y/x",
	"sinh":  "hyperbolic sine",
	"cosh":  "hyperbolic cosine",
	"tanh":  "hyperbolic tangent",
	"asinh": "inverse hyperbolic sine",
	"acosh": "inverse hyperbolic cosine",
	"atanh": "inverse hyperbolic tangent",
	"ln":    "natural logarithm",
	"log10": "base-10 logarithm",
	"exp":   "e raised to the argument",
	"sqrt":  "square root",
	"pow":   "first argument raised to the second",
	"floor": "round towards negative infinity",
	"ceil":  "round towards positive infinity",
	"hypot": "sqrt(x*x + y*y) without undue overflow",

	// Conversion functions
	"itor":            "integer to real",
	"rtoi":            "real to integer, truncating",
	"bitstoreal":      "64-bit vector reinterpreted as real",
	"realtobits":      "real reinterpreted as a 64-bit vector",
	"shortrealtobits": "shortreal reinterpreted as a 32-bit vector",
	"bitstoshortreal": "32-bit vector reinterpreted as shortreal",

	// Array query functions
	"left":       "left bound of a dimension",
	"right":      "right bound of a dimension",
	"low":        "lower bound of a dimension",
	"high":       "upper bound of a dimension",
	"increment":  "-1 when left < right, else 1",
	"size":       "number of elements in a dimension",
	"dimensions": "total number of dimensions",

	// Bit vector functions
	"clog2":     "ceiling of log2, the address width for a depth",
	"bits":      "number of bits needed to hold the expression",
	"typename":  "name of the expression's type as a string",
	"isunknown": "true when any bit is x or z",
	"onehot":    "true when exactly one bit is set",
	"onehot0":   "true when at most one bit is set",
	"countbits": "count of bits matching the control bits",
	"countones": "count of 1 bits",

	// Random functions
	"urandom":       "unsigned 32-bit pseudo-random number",
	"urandom_range": "pseudo-random number within a range",
	"random":        "signed 32-bit pseudo-random number",

	// Time functions
	"time":     "current simulation time as a 64-bit integer",
	"stime":    "current simulation time as a 32-bit integer",
	"realtime": "current simulation time as a real",
}

// SystemTasks maps each recognized system task to a short description.
var SystemTasks = map[string]string{
	// Display tasks
	"display":  "print a formatted line to stdout",
	"write":    "print formatted text without a newline",
	"monitor":  "print whenever an argument changes",
	"strobe":   "print at the end of the current time step",
	"displayb": "display with binary default format",
	"displayh": "display with hex default format",
	"displayo": "display with octal default format",
	"writeb":   "write with binary default format",
	"writeh":   "write with hex default format",
	"writeo":   "write with octal default format",
	"monitorb": "monitor with binary default format",
	"monitorh": "monitor with hex default format",
	"monitoro": "monitor with octal default format",
	"strobeb":  "strobe with binary default format",
	"strobeh":  "strobe with hex default format",
	"strobeo":  "strobe with octal default format",

	// File I/O tasks
	"fdisplay":  "display into a file",
	"fwrite":    "write into a file",
	"fmonitor":  "monitor into a file",
	"fstrobe":   "strobe into a file",
	"fdisplayb": "fdisplay with binary default format",
	"fdisplayh": "fdisplay with hex default format",
	"fdisplayo": "fdisplay with octal default format",
	"fwriteb":   "fwrite with binary default format",
	"fwriteh":   "fwrite with hex default format",
	"fwriteo":   "fwrite with octal default format",
	"fmonitorb": "fmonitor with binary default format",
	"fmonitorh": "fmonitor with hex default format",
	"fmonitoro": "fmonitor with octal default format",
	"fstrobeb":  "fstrobe with binary default format",
	"fstrobeh":  "fstrobe with hex default format",
	"fstrobeo":  "fstrobe with octal default format",
	"swrite":    "write formatted text into a string variable",
	"sformat":   "format into a string variable",
	"sformatf":  "return formatted text as a string",
	"fopen":     "open a file, returning a descriptor",
	"fclose":    "close a file descriptor",
	"fflush":    "flush buffered file output",
	"fgetc":     "read one character from a file",
	"fgets":     "read one line from a file",
	"fread":     "read binary data from a file",
	"fscanf":    "read formatted input from a file",
	"sscanf":    "read formatted input from a string",
	"fseek":     "reposition a file descriptor",
	"ftell":     "current position of a file descriptor",
	"rewind":    "reset a file descriptor to the start",
	"ungetc":    "push a character back onto a file stream",
	"feof":      "true at end of file",
	"ferror":    "last error for a file descriptor",

	// Severity tasks
	"info":    "report an informational message",
	"warning": "report a warning",
	"error":   "report a runtime error",
	"fatal":   "report a fatal error and finish",

	// Simulation control
	"finish": "end the simulation",
	"stop":   "suspend the simulation",
	"exit":   "wait for program blocks to finish, then end",

	// Timing
	"timeformat":     "set the %t display format",
	"printtimescale": "print the active time unit and precision",

	// Memory load/store
	"readmemb": "load a memory from a binary text file",
	"readmemh": "load a memory from a hex text file",
	"writememb": "store a memory to a binary text file",
	"writememh": "store a memory to a hex text file",

	// Value change dump
	"dumpfile":       "name the VCD output file",
	"dumpvars":       "select variables to dump",
	"dumpon":         "resume dumping",
	"dumpoff":        "suspend dumping",
	"dumpall":        "dump every selected variable now",
	"dumpflush":      "flush the VCD file",
	"dumplimit":      "cap the VCD file size",
	"dumpports":      "dump port driver states",
	"dumpportsoff":   "suspend port dumping",
	"dumpportson":    "resume port dumping",
	"dumpportsall":   "dump every selected port now",
	"dumpportsflush": "flush the port dump file",
	"dumpportslimit": "cap the port dump file size",

	// Assertion control
	"assertoff":          "disable assertions",
	"asserton":           "re-enable assertions",
	"assertkill":         "abort active assertion attempts",
	"assertcontrol":      "general assertion control",
	"assertpasson":       "enable assertion pass actions",
	"assertpassoff":      "disable assertion pass actions",
	"assertfailon":       "enable assertion fail actions",
	"assertfailoff":      "disable assertion fail actions",
	"assertnonvacuouson": "report only non-vacuous passes",
	"assertvacuousoff":   "suppress vacuous pass reporting",
}

// IsSystemFunction reports whether name is a recognized system
// function, without the leading '$'.
func IsSystemFunction(name string) bool {
	_, ok := SystemFunctions[name]
	return ok
}

// IsSystemTask reports whether name is a recognized system task,
// without the leading '$'.
func IsSystemTask(name string) bool {
	_, ok := SystemTasks[name]
	return ok
}
