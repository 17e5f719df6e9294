package cmd

import (
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var negativeNumber = regexp.MustCompile(`^-\d+$`)

// intermix lets negative step counts such as "-1" be given as positionals
// anywhere on the command line. Flags (with their values) are moved to the
// front and positionals after a "--" terminator, keeping their order.
// Command lines that name a subcommand are returned unchanged.
func intermix(c *cobra.Command, args []string) []string {
	var flags, positionals []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			positionals = append(positionals, args[i+1:]...)
			i = len(args)
		case negativeNumber.MatchString(a):
			positionals = append(positionals, a)
		case strings.HasPrefix(a, "-") && len(a) > 1:
			flags = append(flags, a)
			if takesValue(c, a) && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		default:
			positionals = append(positionals, a)
		}
	}

	if len(positionals) == 0 {
		return flags
	}
	if isSubcommand(c, positionals[0]) {
		return args
	}
	return append(append(flags, "--"), positionals...)
}

// takesValue reports whether the flag token consumes the next argument.
func takesValue(c *cobra.Command, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	var f *pflag.Flag
	switch {
	case strings.HasPrefix(arg, "--"):
		name := arg[2:]
		if f = c.Flags().Lookup(name); f == nil {
			f = c.PersistentFlags().Lookup(name)
		}
	case len(arg) == 2:
		short := arg[1:]
		if f = c.Flags().ShorthandLookup(short); f == nil {
			f = c.PersistentFlags().ShorthandLookup(short)
		}
	}
	return f != nil && f.NoOptDefVal == ""
}

func isSubcommand(c *cobra.Command, name string) bool {
	for _, sub := range c.Commands() {
		if sub.Name() == name || sub.HasAlias(name) {
			return true
		}
	}
	return false
}
