package hook

import (
	"fmt"
	"sort"
	"strings"
	"text/template"
)

// scripts holds the integration snippet for each supported shell. Each one
// reports command-not-found failures, clears the pending suggestion before
// every accepted line, and binds Ctrl-X Ctrl-S to insert the suggestion.
var scripts = map[string]string{
	"bash": `# cnf: install suggestions for missing commands
command_not_found_handle() {
  {{.Bin}} feedback --token "$1" --line "$*" >&2
  return 127
}
_cnf_accept() { {{.Bin}} accept >/dev/null 2>&1; }
PS0="${PS0}"'$(_cnf_accept)'
_cnf_predict() {
  local s
  s=$({{.Bin}} predict 2>/dev/null) || return
  [ -n "$s" ] && READLINE_LINE=$s && READLINE_POINT=${#s}
}
bind -x '"\C-x\C-s": _cnf_predict'
`,
	"zsh": `# cnf: install suggestions for missing commands
command_not_found_handler() {
  {{.Bin}} feedback --token "$1" --line "$*" >&2
  return 127
}
autoload -Uz add-zsh-hook
_cnf_accept() { {{.Bin}} accept >/dev/null 2>&1; }
add-zsh-hook preexec _cnf_accept
_cnf_predict() {
  local s
  s=$({{.Bin}} predict 2>/dev/null) || return
  [[ -n $s ]] && BUFFER=$s && CURSOR=${#BUFFER}
}
zle -N _cnf_predict
bindkey '^X^S' _cnf_predict
`,
}

// Shells returns the sorted names of supported shells.
func Shells() []string {
	names := make([]string, 0, len(scripts))
	for name := range scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// shellQuote wraps s in single quotes so it survives word splitting and
// expansion in both bash and zsh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Script renders the integration snippet for shell, invoking bin. bin is
// quoted, so it may contain spaces or shell metacharacters.
func Script(shell, bin string) (string, error) {
	src, ok := scripts[shell]
	if !ok {
		return "", fmt.Errorf("unsupported shell %q (supported: %s)", shell, strings.Join(Shells(), ", "))
	}
	tmpl, err := template.New(shell).Parse(src)
	if err != nil {
		return "", fmt.Errorf("parsing %s script: %w", shell, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, struct{ Bin string }{shellQuote(bin)}); err != nil {
		return "", fmt.Errorf("rendering %s script: %w", shell, err)
	}
	return b.String(), nil
}
