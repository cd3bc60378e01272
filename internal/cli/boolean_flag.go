package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	booleanFlagTypeName              = "bool"
	booleanFlagTrueLiteral           = "true"
	booleanFlagAcceptedValuesListing = "true, false, yes, no, on, off, 1, 0"
)

// booleanFlagLiterals maps every accepted spelling to its boolean value.
var booleanFlagLiterals = map[string]bool{
	"true": true, "t": true, "1": true, "yes": true, "y": true, "on": true,
	"false": false, "f": false, "0": false, "no": false, "n": false, "off": false,
}

// booleanFlagValue implements pflag.Value for boolean flags that accept a
// spelled out value ("--tokens yes") in addition to the bare form.
type booleanFlagValue struct {
	target   *bool
	flagName string
}

func (value *booleanFlagValue) Set(input string) error {
	if value == nil || value.target == nil {
		return fmt.Errorf("invalid boolean value %q for flag %q", input, value.flagName)
	}
	literal := strings.ToLower(strings.TrimSpace(input))
	if literal == "" {
		literal = booleanFlagTrueLiteral
	}
	parsedValue, recognized := booleanFlagLiterals[literal]
	if !recognized {
		return fmt.Errorf("invalid boolean value %q for --%s; accepted values: %s", input, value.flagName, booleanFlagAcceptedValuesListing)
	}
	*value.target = parsedValue
	return nil
}

func (value *booleanFlagValue) String() string {
	if value == nil || value.target == nil {
		return strconv.FormatBool(false)
	}
	return strconv.FormatBool(*value.target)
}

func (value *booleanFlagValue) Type() string {
	return booleanFlagTypeName
}

// registerBooleanFlag registers a boolean flag on the flag set. The flag
// works bare ("--copy"), with an attached value ("--copy=false"), and, after
// argument normalization, with a separate value ("--copy false").
func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = defaultValue
	flagSet.Var(&booleanFlagValue{target: target, flagName: name}, name, usage)
	if registered := flagSet.Lookup(name); registered != nil {
		registered.DefValue = strconv.FormatBool(defaultValue)
		registered.NoOptDefVal = booleanFlagTrueLiteral
	}
}

// normalizeBooleanFlagArguments rewrites "--flag value" into "--flag=value"
// for boolean flags so pflag does not treat the value as a positional
// argument. Arguments after a bare "--" pass through untouched.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	booleanFlagNames := collectBooleanFlagNames(command)
	if len(booleanFlagNames) == 0 || len(arguments) == 0 {
		return arguments
	}
	rewritten := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		argument := arguments[index]
		if argument == "--" {
			rewritten = append(rewritten, arguments[index:]...)
			break
		}
		flagName, hasFlagPrefix := strings.CutPrefix(argument, "--")
		if !hasFlagPrefix || flagName == "" || strings.Contains(flagName, "=") {
			rewritten = append(rewritten, argument)
			continue
		}
		if _, isBooleanFlag := booleanFlagNames[flagName]; !isBooleanFlag || index+1 >= len(arguments) {
			rewritten = append(rewritten, argument)
			continue
		}
		literal := strings.ToLower(strings.TrimSpace(arguments[index+1]))
		if _, recognized := booleanFlagLiterals[literal]; !recognized {
			rewritten = append(rewritten, argument)
			continue
		}
		rewritten = append(rewritten, fmt.Sprintf("--%s=%s", flagName, arguments[index+1]))
		index++
	}
	return rewritten
}

// collectBooleanFlagNames gathers the names of every boolean typed flag
// registered on the command or its subcommands.
func collectBooleanFlagNames(command *cobra.Command) map[string]struct{} {
	names := map[string]struct{}{}
	if command == nil {
		return names
	}
	recordBooleanFlag := func(flag *pflag.Flag) {
		if flag != nil && flag.Value != nil && flag.Value.Type() == booleanFlagTypeName {
			names[flag.Name] = struct{}{}
		}
	}
	command.PersistentFlags().VisitAll(recordBooleanFlag)
	command.Flags().VisitAll(recordBooleanFlag)
	for _, childCommand := range command.Commands() {
		for childFlagName := range collectBooleanFlagNames(childCommand) {
			names[childFlagName] = struct{}{}
		}
	}
	return names
}
