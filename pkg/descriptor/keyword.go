// pkg/descriptor/keyword.go
package descriptor

// Keyword identifies a "Tag: value" field of a descriptor.
type Keyword int

const (
	KeywordUnknown Keyword = iota
	KeywordName
	KeywordDescription
	KeywordVersion
	KeywordURL
	KeywordRequires
	KeywordRequiresPrivate
	KeywordConflicts
	KeywordLibs
	KeywordLibsPrivate
	KeywordCflags
)

var keywordNames = map[string]Keyword{
	"Name":             KeywordName,
	"Description":      KeywordDescription,
	"Version":          KeywordVersion,
	"URL":              KeywordURL,
	"Requires":         KeywordRequires,
	"Requires.private": KeywordRequiresPrivate,
	"Conflicts":        KeywordConflicts,
	"Libs":             KeywordLibs,
	"Libs.private":     KeywordLibsPrivate,
	"Cflags":           KeywordCflags,
	"CFlags":           KeywordCflags,
}

// ParseKeyword maps a tag to its keyword. Tags are case sensitive;
// "CFlags" is accepted as a spelling of "Cflags".
func ParseKeyword(tag string) Keyword {
	return keywordNames[tag]
}

func (k Keyword) String() string {
	switch k {
	case KeywordName:
		return "Name"
	case KeywordDescription:
		return "Description"
	case KeywordVersion:
		return "Version"
	case KeywordURL:
		return "URL"
	case KeywordRequires:
		return "Requires"
	case KeywordRequiresPrivate:
		return "Requires.private"
	case KeywordConflicts:
		return "Conflicts"
	case KeywordLibs:
		return "Libs"
	case KeywordLibsPrivate:
		return "Libs.private"
	case KeywordCflags:
		return "Cflags"
	}
	return "unknown"
}
