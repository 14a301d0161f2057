package common

// BrioVersion is the current brio version as a string.
const BrioVersion string = "0.1.0"

// BrioProjectFileName is the name for brio project files.
const BrioProjectFileName string = "brio.toml"

// BrioFileExt is the file extension for a brio source file.
const BrioFileExt string = ".brio"

// BrioOutputExt is the file extension for emitted LLVM IR files.
const BrioOutputExt string = ".ll"
