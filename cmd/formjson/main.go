// Command formjson reads or fills the form fields of an HTML document.
//
//	formjson -html page.html -root '#signup'
//	formjson -html page.html -op fromjson -values values.json > filled.html
//
// tojson writes the field values as JSON; fromjson, reset and clear write the
// document with the updated fields as HTML.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/tomasbasham/formjson"
	"github.com/tomasbasham/formjson/htmldom"
)

type options struct {
	html   string
	root   string
	op     string
	values string
	config string
	indent string
	files  bool
	attach attachments
}

func main() {
	var o options
	flag.StringVar(&o.html, "html", "-", "HTML document (- for stdin)")
	flag.StringVar(&o.root, "root", "form", "css selector or XPath of the root element")
	flag.StringVar(&o.op, "op", "tojson", "operation: tojson, fromjson, reset or clear")
	flag.StringVar(&o.values, "values", "-", "JSON values for fromjson (- for stdin)")
	flag.StringVar(&o.config, "config", "", "YAML file with operation options")
	flag.StringVar(&o.indent, "indent", "", "indent JSON output by this string")
	flag.BoolVar(&o.files, "files", false, "include the content of attached files")
	flag.Var(&o.attach, "attach", "attach a file to a file input as name=path (repeatable)")
	output := flag.String("output", "", "output file (stdout if empty)")
	verbose := flag.Bool("v", false, "log debug output")
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalf("Failed to create output: %v", err)
		}
		defer f.Close()
		w = f
	}

	if err := run(context.Background(), o, os.Stdin, w, logger); err != nil {
		logger.Error("formjson failed", zap.String("op", o.op), zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func run(ctx context.Context, o options, stdin io.Reader, w io.Writer, logger *zap.Logger) error {
	if o.html == "-" && o.values == "-" && o.op == "fromjson" {
		return errors.New("-html and -values cannot both read stdin")
	}
	cfg, err := loadConfig(o.config)
	if err != nil {
		return err
	}

	doc, err := readDocument(o.html, stdin)
	if err != nil {
		return err
	}
	if err := attachFiles(doc, o.attach); err != nil {
		return err
	}
	root, err := doc.Find(o.root)
	if err != nil {
		return err
	}
	if root == nil {
		return fmt.Errorf("no element matches %q", o.root)
	}
	logger.Debug("resolved root", zap.String("root", o.root), zap.String("tag", root.Tag()))

	c := formjson.New(formjson.WithDocument(doc), formjson.WithLogger(logger))
	switch o.op {
	case "tojson":
		enc := formjson.NewEncoder(w, c)
		enc.SetOptions(&cfg.ToJSON)
		enc.ReadFiles(o.files)
		enc.SetIndent(o.indent)
		return enc.Encode(ctx, o.root)
	case "fromjson":
		r, closeValues, err := open(o.values, stdin)
		if err != nil {
			return err
		}
		defer closeValues()
		dec := formjson.NewDecoder(r, c)
		dec.SetOptions(&cfg.FromJSON)
		if err := dec.Decode(o.root); err != nil {
			return err
		}
	case "reset":
		if err := c.Reset(o.root, &cfg.Reset); err != nil {
			return err
		}
	case "clear":
		if err := c.Clear(o.root, &cfg.Clear); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown operation %q", o.op)
	}
	return doc.Render(w)
}

func readDocument(path string, stdin io.Reader) (*htmldom.Document, error) {
	r, closeDoc, err := open(path, stdin)
	if err != nil {
		return nil, err
	}
	defer closeDoc()
	return htmldom.Parse(r)
}

// open returns stdin for "-" and the named file otherwise.
func open(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func attachFiles(doc *htmldom.Document, attach attachments) error {
	files := make(map[string][]formjson.File)
	var names []string
	for _, a := range attach {
		f, err := htmldom.OpenFile(a.path)
		if err != nil {
			return fmt.Errorf("attach %s: %w", a.name, err)
		}
		if _, ok := files[a.name]; !ok {
			names = append(names, a.name)
		}
		files[a.name] = append(files[a.name], f)
	}
	for _, name := range names {
		el, err := doc.Find(fmt.Sprintf(`input[type=file][name=%q]`, name))
		if err != nil {
			return err
		}
		if el == nil {
			return fmt.Errorf("attach %s: no file input with that name", name)
		}
		if err := doc.AttachFiles(el, files[name]...); err != nil {
			return err
		}
	}
	return nil
}
