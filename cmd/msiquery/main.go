// cmd/msiquery/main.go - query installed Windows Installer products from the command line.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/windowsadmins/msiquery/pkg/config"
	"github.com/windowsadmins/msiquery/pkg/inventory"
	"github.com/windowsadmins/msiquery/pkg/logging"
	"github.com/windowsadmins/msiquery/pkg/msi"
	"github.com/windowsadmins/msiquery/pkg/version"
	"gopkg.in/yaml.v3"
)

// Exit codes
const (
	exitOK            = 0
	exitError         = 1
	exitNotFound      = 2
	exitVersionFailed = 3
)

type options struct {
	list       bool
	inventory  bool
	product    string
	properties []string
	has        bool
	minVersion string
	context    string
	allUsers   bool
	format     string
	lenient    bool
	configPath string
	showConfig bool
	version    bool
	verbosity  int
}

var (
	console   *logging.Console
	newClient = msi.New // abstracted for testing

	// session record writers, abstracted for testing
	sessionStart = logging.StartSession
	sessionEnd   = logging.EndSession
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (*options, *pflag.FlagSet, error) {
	opts := &options{}
	fs := pflag.NewFlagSet("msiquery", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.list, "list", false, "List the product codes of installed products.")
	fs.BoolVar(&opts.inventory, "inventory", false, "Report every installed product with its properties.")
	fs.StringVar(&opts.product, "product", "", "Product code to query, e.g. {23170F69-40C1-2702-1900-000001000000}.")
	fs.StringArrayVar(&opts.properties, "property", nil, "Property to read (repeatable). Defaults to the configured list.")
	fs.BoolVar(&opts.has, "has", false, "Only report whether --product defines each --property.")
	fs.StringVar(&opts.minVersion, "min-version", "", "Check that --product is installed at this version or newer.")
	fs.StringVar(&opts.context, "context", "", "Install contexts to enumerate: all, machine, userManaged, userUnmanaged.")
	fs.BoolVar(&opts.allUsers, "all-users", false, "Enumerate per-user products of every account.")
	fs.StringVar(&opts.format, "format", "", "Output format: text, yaml or json.")
	fs.BoolVar(&opts.lenient, "lenient", false, "End enumeration silently on installer errors.")
	fs.StringVar(&opts.configPath, "config", config.ConfigPath, "Path to the configuration file.")
	fs.BoolVar(&opts.showConfig, "show-config", false, "Display the current configuration and exit.")
	fs.BoolVar(&opts.version, "version", false, "Print the version and exit.")
	fs.CountVarP(&opts.verbosity, "verbose", "v", "Increase verbosity (e.g. -v, -vv)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags]\n", filepath.Base(os.Args[0]))
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	return opts, fs, nil
}

// run executes the command line. Reports go to out; diagnostics go to stderr.
func run(args []string, out, stderr io.Writer) int {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	console = logging.New(opts.verbosity > 0)
	if stderr != os.Stderr {
		console.SetOutput(stderr)
	}

	if opts.version {
		version.Fprint(out, opts.verbosity > 0)
		return exitOK
	}

	cfg, err := config.LoadConfigFrom(opts.configPath)
	if err != nil {
		console.Error("Failed to load configuration: %v", err)
		return exitError
	}
	applyOverrides(cfg, opts, fs)
	if err := cfg.Validate(); err != nil {
		console.Error("Invalid options: %v", err)
		return exitError
	}

	if opts.showConfig {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			console.Error("Failed to serialize configuration: %v", err)
			return exitError
		}
		fmt.Fprint(out, string(data))
		return exitOK
	}

	if err := logging.Init(cfg); err != nil {
		console.Warning("File logging disabled: %v", err)
	}
	defer logging.CloseLogger()

	clientOpts, err := clientOptions(cfg)
	if err != nil {
		console.Error("%v", err)
		return exitError
	}
	client := newClient(clientOpts...)

	switch {
	case opts.product != "":
		return queryProduct(client, cfg, opts, out)
	case opts.inventory:
		return runInventory(client, cfg, out)
	case opts.list:
		return listProducts(client, out)
	default:
		fs.Usage()
		return exitError
	}
}

// applyOverrides folds command-line flags into the loaded configuration.
func applyOverrides(cfg *config.Configuration, opts *options, fs *pflag.FlagSet) {
	if fs.Changed("context") {
		cfg.InstallContext = opts.context
	}
	if opts.allUsers {
		cfg.UserSID = msi.AllUsersSID
	}
	if fs.Changed("format") {
		cfg.OutputFormat = opts.format
	}
	if opts.lenient {
		cfg.LenientEnumeration = true
	}
	if len(opts.properties) > 0 {
		cfg.Properties = opts.properties
	}
	switch {
	case opts.verbosity >= 2:
		cfg.LogLevel = "DEBUG"
		cfg.Verbose = true
	case opts.verbosity == 1:
		cfg.Verbose = true
	}
}

func clientOptions(cfg *config.Configuration) ([]msi.Option, error) {
	ctx, err := msi.ParseInstallContext(cfg.InstallContext)
	if err != nil {
		return nil, fmt.Errorf("invalid InstallContext: %w", err)
	}
	opts := []msi.Option{msi.WithContext(ctx)}
	if cfg.UserSID != "" {
		opts = append(opts, msi.WithUserSID(cfg.UserSID))
	}
	if cfg.LenientEnumeration {
		opts = append(opts, msi.WithLenientEnumeration())
	}
	return opts, nil
}

func configuredProperties(cfg *config.Configuration) []msi.Property {
	props := make([]msi.Property, 0, len(cfg.Properties))
	for _, p := range cfg.Properties {
		props = append(props, msi.Property(p))
	}
	return props
}

func startSession(runType string, metadata map[string]interface{}) {
	if err := sessionStart(runType, metadata); err != nil {
		logging.Warn("Failed to write session record", "error", err)
		console.Debug("Failed to write session record: %v", err)
	}
}

func endSession(status string, summary logging.SessionSummary) {
	if err := sessionEnd(status, summary); err != nil {
		logging.Warn("Failed to write session record", "error", err)
		console.Debug("Failed to write session record: %v", err)
	}
}

func listProducts(client *msi.Client, out io.Writer) int {
	startSession("list", nil)

	var summary logging.SessionSummary
	for pc, err := range client.Products() {
		if err != nil {
			summary.Failures++
			endSession("failed", summary)
			logging.Error("Enumeration failed", "error", err)
			console.Error("Enumeration failed: %v", err)
			return exitError
		}
		summary.ProductsEnumerated++
		summary.Products = append(summary.Products, pc.String())
		fmt.Fprintln(out, pc.String())
	}

	logging.Info("Listed products", "count", summary.ProductsEnumerated)
	console.Debug("Listed %d products, session log in %s", summary.ProductsEnumerated, logging.GetCurrentLogDir())
	endSession("completed", summary)
	return exitOK
}

func runInventory(client *msi.Client, cfg *config.Configuration, out io.Writer) int {
	startSession("inventory", map[string]interface{}{"context": cfg.InstallContext})

	report, err := inventory.NewCollector(client, configuredProperties(cfg)).Collect()
	summary := logging.SessionSummary{Failures: len(report.Failures)}
	for _, rec := range report.Products {
		summary.ProductsEnumerated++
		summary.PropertiesRead += len(rec.Properties)
	}
	console.Info("Collected %d products (%d properties, %d failures)",
		summary.ProductsEnumerated, summary.PropertiesRead, summary.Failures)
	console.Debug("Session log in %s", logging.GetCurrentLogDir())

	if encErr := report.Encode(out, cfg.OutputFormat); encErr != nil {
		console.Error("%v", encErr)
		endSession("failed", summary)
		return exitError
	}
	if err != nil {
		summary.Failures++
		console.Error("Inventory incomplete: %v", err)
		endSession("failed", summary)
		return exitError
	}
	endSession("completed", summary)
	return exitOK
}

func queryProduct(client *msi.Client, cfg *config.Configuration, opts *options, out io.Writer) int {
	code, err := msi.ParseProductCode(opts.product)
	if err != nil {
		console.Error("%v", err)
		return exitError
	}

	if opts.minVersion != "" {
		startSession("check", map[string]interface{}{"product": code.String(), "min_version": opts.minVersion})
		installed, match, err := inventory.NewCollector(client, nil).CheckProduct(code, opts.minVersion)
		switch {
		case err != nil:
			console.Error("%v", err)
			endSession("failed", logging.SessionSummary{Failures: 1})
			return exitError
		case !installed:
			console.Warning("%s is not installed", code)
			endSession("completed", logging.SessionSummary{})
			return exitNotFound
		case !match:
			console.Warning("%s is installed but older than %s", code, opts.minVersion)
			endSession("completed", logging.SessionSummary{ProductsEnumerated: 1})
			return exitVersionFailed
		default:
			console.Success("%s is installed and satisfies %s", code, opts.minVersion)
			endSession("completed", logging.SessionSummary{ProductsEnumerated: 1})
			return exitOK
		}
	}

	props := configuredProperties(cfg)
	startSession("query", map[string]interface{}{"product": code.String()})

	if opts.has {
		missing := false
		for _, p := range props {
			ok := client.HasProperty(code, p)
			missing = missing || !ok
			fmt.Fprintf(out, "%s\t%t\n", p, ok)
		}
		endSession("completed", logging.SessionSummary{PropertiesRead: len(props)})
		if missing {
			return exitNotFound
		}
		return exitOK
	}

	summary := logging.SessionSummary{ProductsEnumerated: 1}
	rc := exitOK
	for _, p := range props {
		value, err := client.GetProperty(code, p)
		if err != nil {
			summary.Failures++
			status, _ := msi.StatusOf(err)
			switch status.Kind() {
			case msi.KindUnknownProduct:
				console.Error("%s is not installed", code)
				endSession("completed", summary)
				return exitNotFound
			case msi.KindUnknownProperty:
				logging.Debug("Property not set", "product", code.String(), "property", string(p))
				fmt.Fprintf(out, "%s\t\n", p)
				rc = exitNotFound
				continue
			default:
				console.Error("%v", err)
				endSession("failed", summary)
				return exitError
			}
		}
		summary.PropertiesRead++
		fmt.Fprintf(out, "%s\t%s\n", p, value)
	}
	endSession("completed", summary)
	return rc
}
