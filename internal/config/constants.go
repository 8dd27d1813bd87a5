package config

const SourceFileExt = ".xp"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".xp", ".procheck"}

// IsTestMode indicates if the program is running in test mode.
// This is set once at startup when handling the test command.
var IsTestMode = false

// Checker-recognized function names. reveal and serialize are not
// keywords: the checker special-cases calls by name so that hosts
// without dedicated syntax can adopt the mechanism as a library
// convention plus an analysis pass.
const (
	RevealFuncName    = "reveal"
	SerializeFuncName = "serialize"
)

// Tag annotation keywords
const (
	InProcKeyword = "inproc"
	XProcKeyword  = "xproc"
)

// Built-in type names
const (
	StringTypeName = "String"
	IntTypeName    = "Int"
	UnitTypeName   = "Unit"
	ListTypeName   = "List"
	MapTypeName    = "Map"
)

// DefaultConfigFile is the per-project configuration file name.
const DefaultConfigFile = "procheck.yaml"
