package languages

import "strings"

// Judge numeric language identifiers. cpp doubles as the fallback for names
// the catalog does not know.
const (
	IDPython     = 71
	IDCpp        = 52
	IDJava       = 62
	IDJavascript = 63

	DefaultID = IDCpp
)

var catalog = map[string]int{
	"python":     IDPython,
	"python3":    IDPython,
	"py":         IDPython,
	"cpp":        IDCpp,
	"c++":        IDCpp,
	"java":       IDJava,
	"javascript": IDJavascript,
	"js":         IDJavascript,
	"node":       IDJavascript,
}

// Resolve maps a language name to the judge's numeric identifier. Unknown
// names fall back to the cpp id instead of failing.
func Resolve(name string) int {
	if id, ok := catalog[strings.ToLower(strings.TrimSpace(name))]; ok {
		return id
	}
	return DefaultID
}

// Names lists the canonical language names the catalog serves
func Names() []string {
	return []string{"python", "cpp", "java", "javascript"}
}
