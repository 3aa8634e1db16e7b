package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/hamidzr/flashcfg/model"
	"github.com/hamidzr/flashcfg/pkg/jsondoc"
	"github.com/hamidzr/flashcfg/store"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
)

// Value types accepted by --type.
const (
	typeAuto   = "auto"
	typeInt    = "int"
	typeFloat  = "float"
	typeBool   = "bool"
	typeString = "string"
)

// maxSuggestions caps the "did you mean" list for unknown keys.
const maxSuggestions = 3

func newGetCmd() *cobra.Command {
	var valueType, def string

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			key := args[0]
			if !s.store.Exists(key) {
				if cmd.Flags().Changed("default") {
					fmt.Fprintln(cmd.OutOrStdout(), def)
					return nil
				}
				return model.NewExitError(model.KeyNotFound, notFound(key, s.store.Keys()))
			}

			value, err := getTyped(s.store, key, valueType)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	cmd.Flags().StringVar(&valueType, "type", typeAuto, "Read the value as auto, int, float, bool or string")
	cmd.Flags().StringVar(&def, "default", "", "Value printed when the key is missing")
	return cmd
}

func newSetCmd() *cobra.Command {
	var valueType string

	cmd := &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store a setting and save",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			if err := setTyped(s.store, args[0], args[1], valueType); err != nil {
				return exitError(err)
			}
			return s.store.Save()
		},
	}

	cmd.Flags().StringVar(&valueType, "type", typeAuto, "Store the value as auto, int, float, bool or string")
	return cmd
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm KEY...",
		Aliases: []string{"remove"},
		Short:   "Remove settings and save",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			for _, key := range args {
				s.store.Remove(key)
			}
			return s.store.Save()
		},
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every setting and save",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			s.store.Clear()
			return s.store.Save()
		},
	}
}

func newKeysCmd() *cobra.Command {
	var match string

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List setting keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			keys := s.store.Keys()
			if match != "" {
				keys = matchKeys(match, keys)
			}
			for _, key := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&match, "match", "m", "", "Only list keys fuzzy matching this pattern")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [FILE|-]",
		Short: "Merge a JSON object into the settings and save",
		Long: "Merge the top-level keys of a JSON object into the settings and save.\n" +
			"Nested objects replace the stored value as a whole. Reads stdin when FILE is - or missing.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			return exitError(s.store.UpdateFromJSON(string(data)))
		},
	}
}

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query PATH",
		Short: "Print the value at a dotted path such as wifi.ssid or servers.0.port",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			v, ok := s.store.Document().Query(args[0])
			if !ok {
				return model.NewExitError(model.KeyNotFound, fmt.Errorf("path %q not found", args[0]))
			}
			fmt.Fprintln(cmd.OutOrStdout(), jsondoc.AsString(v))
			return nil
		},
	}
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, model.NewExitError(model.InvalidInput, err)
	}
	return data, nil
}

func getTyped(st *store.Store, key, valueType string) (string, error) {
	switch valueType {
	case typeAuto, typeString:
		return st.GetString(key, ""), nil
	case typeInt:
		return strconv.Itoa(st.GetInt(key, 0)), nil
	case typeFloat:
		return strconv.FormatFloat(st.GetFloat(key, 0), 'g', -1, 64), nil
	case typeBool:
		return strconv.FormatBool(st.GetBool(key, false)), nil
	default:
		return "", invalidType(valueType)
	}
}

// setTyped parses raw as valueType. In auto mode integers, then booleans,
// then finite floats are tried before falling back to a string.
func setTyped(st *store.Store, key, raw, valueType string) error {
	switch valueType {
	case typeAuto:
		if i, err := strconv.Atoi(raw); err == nil {
			return st.SetInt(key, i)
		}
		if raw == "true" || raw == "false" {
			return st.SetBool(key, raw == "true")
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return st.SetFloat(key, f)
		}
		return st.SetString(key, raw)
	case typeInt:
		i, err := strconv.Atoi(raw)
		if err != nil {
			return model.NewExitError(model.InvalidInput, fmt.Errorf("%q is not an int", raw))
		}
		return st.SetInt(key, i)
	case typeFloat:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.NewExitError(model.InvalidInput, fmt.Errorf("%q is not a float", raw))
		}
		return st.SetFloat(key, f)
	case typeBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return model.NewExitError(model.InvalidInput, fmt.Errorf("%q is not a bool", raw))
		}
		return st.SetBool(key, b)
	case typeString:
		return st.SetString(key, raw)
	default:
		return invalidType(valueType)
	}
}

func invalidType(valueType string) error {
	return model.NewExitError(model.InvalidInput, fmt.Errorf("unknown type %q", valueType))
}

// matchKeys returns the keys fuzzy matching pattern, best match first.
func matchKeys(pattern string, keys []string) []string {
	matches := fuzzy.Find(pattern, keys)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}

func notFound(key string, keys []string) error {
	suggestions := matchKeys(key, keys)
	if len(suggestions) == 0 {
		return fmt.Errorf("key %q not found", key)
	}
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return fmt.Errorf("key %q not found, did you mean: %s", key, strings.Join(suggestions, ", "))
}
