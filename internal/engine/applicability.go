package engine

import "github.com/lintgate/lintgate/internal/types"

// dialectScopes lists the host languages whose tool scopes are declared
// against internal dialect tags rather than the file's apparent language.
// TypeScript layers on JavaScript; both share the ecmascript layer, so a tool
// scoped to either the dialect's own name or the shared layer applies.
// Every other host language accepts any tool.
var dialectScopes = map[string]map[string]bool{
	"javascript": {"javascript": true, "ecmascript": true},
	"typescript": {"typescript": true, "ecmascript": true},
}

// Applies decides whether a tool's declared language scope matches a file's
// host language. An empty scope means the tool is unscoped and always
// applies.
func Applies(tool types.ToolDescriptor, file types.FileRef) bool {
	scopes, special := dialectScopes[file.Language()]
	if !special {
		return true
	}
	if tool.Scope == "" {
		return true
	}
	return scopes[tool.Scope]
}
