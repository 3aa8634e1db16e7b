package cli

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/hamidzr/flashcfg/internal/config"
	"github.com/hamidzr/flashcfg/pkg/jsondoc"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print all settings (--format json, pretty, yaml or cbor)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			return writeDocument(cmd.OutOrStdout(), s.store.Document(), s.cfg.Format)
		},
	}
}

func writeDocument(w io.Writer, doc *jsondoc.Document, format string) error {
	switch format {
	case config.FormatJSON:
		_, err := fmt.Fprintln(w, doc.String())
		return err
	case config.FormatPretty:
		out := doc.MarshalIndent()
		if isTerminal(w) {
			out = pretty.Color(out, nil)
		}
		_, err := w.Write(out)
		return err
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(yamlNode(rootOrEmpty(doc))); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatCBOR:
		em, err := cbor.CanonicalEncOptions().EncMode()
		if err != nil {
			return err
		}
		out, err := em.Marshal(jsondoc.ToInterface(rootOrEmpty(doc)))
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return invalidFormat(format)
	}
}

func invalidFormat(format string) error {
	return fmt.Errorf("unknown dump format %q", format)
}

// rootOrEmpty returns the document root, treating null as an empty object the
// same way the JSON encoder does.
func rootOrEmpty(doc *jsondoc.Document) any {
	if doc.IsNull() {
		return jsondoc.NewObject()
	}
	return doc.Root()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// yamlNode builds a node tree so mappings keep the document's key order.
func yamlNode(v any) *yaml.Node {
	switch t := v.(type) {
	case *jsondoc.Object:
		n := &yaml.Node{Kind: yaml.MappingNode}
		t.Range(func(key string, value any) bool {
			n.Content = append(n.Content, scalar("!!str", key), yamlNode(value))
			return true
		})
		return n
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range t {
			n.Content = append(n.Content, yamlNode(item))
		}
		return n
	case bool:
		return scalar("!!bool", strconv.FormatBool(t))
	case int64:
		return scalar("!!int", strconv.FormatInt(t, 10))
	case float64:
		switch {
		case math.IsNaN(t):
			return scalar("!!float", ".nan")
		case math.IsInf(t, 1):
			return scalar("!!float", ".inf")
		case math.IsInf(t, -1):
			return scalar("!!float", "-.inf")
		}
		s := strconv.FormatFloat(t, 'g', -1, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		return scalar("!!float", s)
	case string:
		return scalar("!!str", t)
	default:
		return scalar("!!null", "null")
	}
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
