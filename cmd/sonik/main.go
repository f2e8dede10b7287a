// Command sonik lists synthesis styles, previews them on the default audio
// device and inspects what a preview would play.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sonikatlas/sonik/pkg/config"
	"github.com/sonikatlas/sonik/pkg/debug"
	"github.com/sonikatlas/sonik/pkg/patch"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: sonik [options] <command> [args]\n\nCommands:\n")
	fmt.Fprintf(os.Stderr, "  styles          list catalog styles and the program each one plays\n")
	fmt.Fprintf(os.Stderr, "  preview <id>    play a short audition of a style or patch on the audio device\n")
	fmt.Fprintf(os.Stderr, "  preview         with -recipe, decode a generated recipe and play it\n")
	fmt.Fprintf(os.Stderr, "  inspect <id>    render an audition offline and print its timeline and levels\n")
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	watch := flag.Bool("watch", false, "reload the catalog file while previewing")
	recipe := flag.String("recipe", "", "generated recipe (JSON or YAML) to preview")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	debug.SetLevel(cfg.Level())
	log := debug.Default()

	catalog, loader, err := openCatalog(cfg.Catalog, log)
	if err != nil {
		log.Fatal("%v", err)
	}

	args := flag.Args()[1:]
	switch cmd := flag.Arg(0); cmd {
	case "styles":
		err = runStyles(os.Stdout, catalog)
	case "preview":
		if !*watch {
			loader = nil
		}
		res := newResolver(catalog, loader)
		switch {
		case *recipe != "" && len(args) == 0:
			var id string
			if _, id, err = loadRecipe(*recipe, log.Named("recipe")); err == nil {
				err = runPreview(cfg, res, nil, id, log)
			}
		case *recipe == "" && len(args) == 1:
			err = runPreview(cfg, res, loader, args[0], log)
		default:
			flag.Usage()
			os.Exit(2)
		}
	case "inspect":
		if len(args) != 1 {
			flag.Usage()
			os.Exit(2)
		}
		err = runInspect(os.Stdout, cfg, newResolver(catalog, nil).resolve(args[0]))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal("%s: %v", flag.Arg(0), err)
	}
}

// openCatalog returns the embedded catalog when path is empty.
func openCatalog(path string, log *debug.Logger) (*patch.Catalog, *patch.Loader, error) {
	if path == "" {
		return patch.DefaultCatalog(), nil, nil
	}
	loader := patch.NewLoader(path, log.Named("catalog"))
	c, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}
	return c, loader, nil
}
