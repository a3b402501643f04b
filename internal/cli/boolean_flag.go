package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	booleanFlagTypeName        = "bool"
	booleanFlagTrueLiteral     = "true"
	booleanFlagAcceptedListing = "true, false, yes, no, on, off, 1, 0"
	errorInvalidBooleanFormat  = "invalid boolean value %q for --%s; accepted values: %s"
	flagPrefix                 = "--"
	argumentTerminator         = "--"
)

var booleanFlagLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// parseBooleanLiteral reports the value of a yes/no style literal; an empty literal means true.
func parseBooleanLiteral(input string) (bool, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return true, true
	}
	value, known := booleanFlagLiterals[normalized]
	return value, known
}

// booleanFlagValue is a pflag.Value accepting yes/no style literals in addition to true/false.
type booleanFlagValue struct {
	target  *bool
	flagKey string
}

func (value *booleanFlagValue) Set(input string) error {
	parsed, known := parseBooleanLiteral(input)
	if !known || value.target == nil {
		return fmt.Errorf(errorInvalidBooleanFormat, input, value.flagKey, booleanFlagAcceptedListing)
	}
	*value.target = parsed
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

// registerBooleanFlag adds a tolerant boolean flag that may be given bare, as --name=value, or as --name value.
func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	*target = defaultValue
	flagSet.Var(&booleanFlagValue{target: target, flagKey: name}, name, usage)
	registeredFlag := flagSet.Lookup(name)
	registeredFlag.DefValue = strconv.FormatBool(defaultValue)
	registeredFlag.NoOptDefVal = booleanFlagTrueLiteral
}

// normalizeBooleanFlagArguments joins "--flag value" into "--flag=value" for tolerant boolean flags
// so that a literal such as "no" is not mistaken for the project path. Any other following
// argument is left in place as a positional argument.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	tolerantFlags := tolerantBooleanFlagNames(command.Flags())
	if len(tolerantFlags) == 0 || len(arguments) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		currentArgument := arguments[index]
		if currentArgument == argumentTerminator {
			return append(normalized, arguments[index:]...)
		}
		normalized = append(normalized, currentArgument)
		if !strings.HasPrefix(currentArgument, flagPrefix) || strings.Contains(currentArgument, "=") {
			continue
		}
		flagName := strings.TrimPrefix(currentArgument, flagPrefix)
		if _, tolerant := tolerantFlags[flagName]; !tolerant || index+1 >= len(arguments) {
			continue
		}
		nextArgument := arguments[index+1]
		if strings.TrimSpace(nextArgument) == "" || strings.HasPrefix(nextArgument, "-") {
			continue
		}
		if _, known := parseBooleanLiteral(nextArgument); known {
			normalized[len(normalized)-1] = currentArgument + "=" + nextArgument
			index++
		}
	}
	return normalized
}

func tolerantBooleanFlagNames(flagSet *pflag.FlagSet) map[string]struct{} {
	names := map[string]struct{}{}
	flagSet.VisitAll(func(flag *pflag.Flag) {
		if _, tolerant := flag.Value.(*booleanFlagValue); tolerant {
			names[flag.Name] = struct{}{}
		}
	})
	return names
}
