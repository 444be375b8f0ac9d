package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	md2speech "github.com/alnah/go-md2speech"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed argument values, e.g. shell names
	TakesFiles  bool     // accepts file arguments
	FilePattern string   // glob for file arguments
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"format":      {Values: md2speech.Formats()},
	"code-blocks": {Values: md2speech.CodeBlockPolicies()},
	"log-format":  {Values: []string{"auto", "text", "json"}},
	"config":      {FileGlob: "*.yaml,*.yml,*.toml"},
	"output":      {IsDir: true},
}

// supportedShells lists shells in the order shown to users.
var supportedShells = []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSet.
func getCommands() []commandDef {
	convertFlags := extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{}, io.Discard))

	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert markdown files to speech-ready text",
			Flags:       convertFlags,
			TakesFiles:  true,
			FilePattern: "*.md,*.markdown,*.xz",
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
		{Name: "completion", Desc: "Generate shell completion script", Args: supportedShells},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedShell, shell, strings.Join(supportedShells, ", "))
	}
}

// scriptWriter accumulates the first write error so generators stay linear.
type scriptWriter struct {
	w   io.Writer
	err error
}

func (s *scriptWriter) line(format string, args ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format+"\n", args...)
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func flagWords(flags []flagDef) string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return strings.Join(words, " ")
}

// globExtensions turns "*.md,*.xz" into []string{"md", "xz"}.
func globExtensions(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		exts = append(exts, strings.TrimPrefix(strings.TrimSpace(g), "*."))
	}
	return exts
}

func generateBash(w io.Writer) error {
	cmds := getCommands()
	s := &scriptWriter{w: w}

	s.line("# bash completion for md2speech")
	s.line("_md2speech_completions() {")
	s.line("    local cur prev cmd")
	s.line("    cur=\"${COMP_WORDS[COMP_CWORD]}\"")
	s.line("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"")
	s.line("    cmd=\"${COMP_WORDS[1]}\"")
	s.line("")
	s.line("    if [[ ${COMP_CWORD} -eq 1 && \"${cur}\" != -* ]]; then")
	s.line("        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\") $(compgen -f -- \"${cur}\"))", commandNames(cmds))
	s.line("        return")
	s.line("    fi")
	s.line("")
	for _, c := range cmds {
		if len(c.Args) == 0 {
			continue
		}
		s.line("    if [[ \"${cmd}\" == \"%s\" ]]; then", c.Name)
		s.line("        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))", strings.Join(c.Args, " "))
		s.line("        return")
		s.line("    fi")
	}
	s.line("")
	s.line("    case \"${prev}\" in")
	for _, f := range cmds[0].Flags {
		pattern := "--" + f.Long
		if f.Short != "" {
			pattern += "|-" + f.Short
		}
		switch f.Type {
		case flagEnum:
			s.line("        %s) COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\")); return ;;", pattern, strings.Join(f.Values, " "))
		case flagFile:
			s.line("        %s) COMPREPLY=($(compgen -f -- \"${cur}\")); return ;;", pattern)
		case flagDir:
			s.line("        %s) COMPREPLY=($(compgen -d -- \"${cur}\")); return ;;", pattern)
		case flagInt, flagString:
			s.line("        %s) return ;;", pattern)
		}
	}
	s.line("    esac")
	s.line("")
	s.line("    if [[ \"${cur}\" == -* ]]; then")
	s.line("        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))", flagWords(cmds[0].Flags))
	s.line("    else")
	s.line("        COMPREPLY=($(compgen -f -- \"${cur}\"))")
	s.line("    fi")
	s.line("}")
	s.line("complete -F _md2speech_completions md2speech")
	return s.err
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	s := &scriptWriter{w: w}

	s.line("#compdef md2speech")
	s.line("")
	s.line("_md2speech() {")
	s.line("    local -a commands")
	s.line("    commands=(")
	for _, c := range cmds {
		s.line("        '%s:%s'", c.Name, c.Desc)
	}
	s.line("    )")
	s.line("")
	s.line("    local -a convert_flags")
	s.line("    convert_flags=(")
	for _, f := range cmds[0].Flags {
		s.line("        %s", zshFlagSpec(f))
	}
	s.line("    )")
	s.line("")
	s.line("    if (( CURRENT == 2 )) && [[ ${words[CURRENT]} != -* ]]; then")
	s.line("        _describe 'command' commands")
	s.line("        _files")
	s.line("        return")
	s.line("    fi")
	s.line("")
	s.line("    case ${words[2]} in")
	for _, c := range cmds[1:] {
		if len(c.Args) > 0 {
			s.line("        %s) _values 'shell' %s ;;", c.Name, strings.Join(c.Args, " "))
		}
	}
	s.line("        version|help) ;;")
	s.line("        *) _arguments -s $convert_flags '*:markdown file:_files -g \"*.(%s)\"' ;;", strings.Join(globExtensions(cmds[0].FilePattern), "|"))
	s.line("    esac")
	s.line("}")
	s.line("")
	s.line("_md2speech \"$@\"")
	return s.err
}

func zshFlagSpec(f flagDef) string {
	desc := strings.ReplaceAll(f.Desc, "'", "")
	desc = strings.ReplaceAll(desc, ":", "")

	var action string
	switch f.Type {
	case flagEnum:
		action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		action = fmt.Sprintf(":%s:_files", f.Long)
	case flagDir:
		action = fmt.Sprintf(":%s:_files -/", f.Long)
	case flagInt, flagString:
		action = fmt.Sprintf(":%s:", f.Long)
	}

	if f.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
	}
	return fmt.Sprintf("'--%s[%s]%s'", f.Long, desc, action)
}

func generateFish(w io.Writer) error {
	cmds := getCommands()
	s := &scriptWriter{w: w}

	s.line("# fish completion for md2speech")
	s.line("function __fish_md2speech_needs_command")
	s.line("    set -l cmd (commandline -opc)")
	s.line("    test (count $cmd) -eq 1")
	s.line("end")
	s.line("")
	s.line("function __fish_md2speech_using_command")
	s.line("    set -l cmd (commandline -opc)")
	s.line("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]")
	s.line("end")
	s.line("")
	for _, c := range cmds {
		s.line("complete -c md2speech -n '__fish_md2speech_needs_command' -a %s -d '%s'", c.Name, c.Desc)
	}
	for _, c := range cmds {
		if len(c.Args) > 0 {
			s.line("complete -c md2speech -n '__fish_md2speech_using_command %s' -f -a '%s'", c.Name, strings.Join(c.Args, " "))
		}
	}
	s.line("")
	for _, f := range cmds[0].Flags {
		parts := []string{"complete -c md2speech", "-l " + f.Long}
		if f.Short != "" {
			parts = append(parts, "-s "+f.Short)
		}
		switch f.Type {
		case flagEnum:
			parts = append(parts, "-x -a '"+strings.Join(f.Values, " ")+"'")
		case flagFile:
			parts = append(parts, "-r -F")
		case flagDir:
			parts = append(parts, "-r -a '(__fish_complete_directories)'")
		case flagInt, flagString:
			parts = append(parts, "-r")
		}
		parts = append(parts, "-d '"+strings.ReplaceAll(f.Desc, "'", "")+"'")
		s.line("%s", strings.Join(parts, " "))
	}
	return s.err
}

func generatePowerShell(w io.Writer) error {
	cmds := getCommands()
	s := &scriptWriter{w: w}

	quoted := func(words []string) string {
		q := make([]string, len(words))
		for i, word := range words {
			q[i] = "'" + word + "'"
		}
		return strings.Join(q, ", ")
	}

	var names, flagNames []string
	for _, c := range cmds {
		names = append(names, c.Name)
	}
	for _, f := range cmds[0].Flags {
		flagNames = append(flagNames, "--"+f.Long)
	}

	s.line("# PowerShell completion for md2speech")
	s.line("Register-ArgumentCompleter -Native -CommandName md2speech -ScriptBlock {")
	s.line("    param($wordToComplete, $commandAst, $cursorPosition)")
	s.line("    $elements = $commandAst.CommandElements")
	s.line("    $prev = if ($elements.Count -gt 1) { $elements[-1].ToString() } else { '' }")
	s.line("    $values = @{")
	for _, f := range cmds[0].Flags {
		if f.Type == flagEnum {
			s.line("        '--%s' = @(%s)", f.Long, quoted(f.Values))
		}
	}
	s.line("    }")
	s.line("    $candidates = if ($values.ContainsKey($prev)) { $values[$prev] }")
	s.line("        elseif ($elements.Count -le 2 -and $wordToComplete -notlike '-*') { @(%s) }", quoted(names))
	s.line("        elseif ($elements.Count -ge 2 -and $elements[1].ToString() -eq 'completion') { @(%s) }", quoted(cmds[3].Args))
	s.line("        else { @(%s) }", quoted(flagNames))
	s.line("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {")
	s.line("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)")
	s.line("    }")
	s.line("}")
	return s.err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2speech completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(md2speech completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(md2speech completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    md2speech completion fish > ~/.config/fish/completions/md2speech.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    md2speech completion powershell | Out-String | Invoke-Expression")
}
