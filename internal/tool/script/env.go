package script

import "strings"

// credentialVars are never passed to scripts; the model can read anything a script prints.
var credentialVars = map[string]bool{
	"GEMINI_API_KEY": true,
	"GOOGLE_API_KEY": true,
	"OPENAI_API_KEY": true,
}

// scriptEnv drops provider credentials and BOXED_* overrides from environ.
func scriptEnv(environ []string) []string {
	out := make([]string, 0, len(environ))
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if credentialVars[name] || strings.HasPrefix(name, "BOXED_") {
			continue
		}
		out = append(out, kv)
	}
	return out
}
