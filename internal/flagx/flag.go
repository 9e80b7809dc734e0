// Package flagx lets several components parse their own flags from the same
// command line without tripping over each other's unknown flags.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs returns the subset of args made of allowed flags and their values.
//
// Both "-f value" and "-f=value" (or "--flag=value") forms are understood. A
// token following an allowed flag is treated as its value unless it starts
// with '-'. The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, keep := allowed[name]; keep {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, keep := allowed[arg]; !keep {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// FlagNames lists every flag defined on fs in both "-name" and "--name"
// spelling, ready to be passed to FilterArgs.
func FlagNames(fs *flag.FlagSet) []string {
	var names []string
	fs.VisitAll(func(f *flag.Flag) {
		names = append(names, "-"+f.Name, "--"+f.Name)
	})
	return names
}

// ConfigFileFlag extracts the configuration file path given with -c or
// -config. Other arguments are ignored. It returns "" when no path is set.
func ConfigFileFlag(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")

	_ = fs.Parse(FilterArgs(args, FlagNames(fs)))

	return path
}
