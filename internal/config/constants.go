// Package config holds module-wide constants: signature file
// conventions, version metadata, and sort and strategy names.
package config

// Version is the current engine version.
// Set at build time by the release script via -ldflags.
var Version = "0.1.0"

const SignatureFileExt = ".sig"

// SignatureFileExtensions are all recognized signature-source extensions.
var SignatureFileExtensions = []string{".sig", ".lpo"}

// TrimSignatureExt removes any recognized signature extension from a filename.
// Returns the original string if no extension matches.
func TrimSignatureExt(name string) string {
	for _, ext := range SignatureFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSignatureExt returns true if the path ends with any recognized
// signature extension.
func HasSignatureExt(path string) bool {
	for _, ext := range SignatureFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// DefaultSnapshotDB is a conventional signature database filename.
// internal/sig does not read it: OpenStore always takes an explicit
// path.
const DefaultSnapshotDB = "signature.db"

// Sort names. internal/sig.Signature.Declare does not reject a symbol
// declared under either name.
const (
	TypeSortName = "TYPE"
	KindSortName = "KIND"
)

// EvalStrategy names, accepted by cmd/lambdapi-core's -strategy flag.
const (
	StrategyWhnf = "whnf"
	StrategyHnf  = "hnf"
	StrategySnf  = "snf"
)
