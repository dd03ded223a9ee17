// pkg/inventory/inventory.go - installed MSI product inventory and version checks.

// Package inventory builds reports of installed Windows Installer products
// and answers "is this product installed at this version or newer" questions.
package inventory

import (
	"fmt"
	"sort"
	"time"

	version "github.com/hashicorp/go-version"
	"github.com/windowsadmins/msiquery/pkg/logging"
	"github.com/windowsadmins/msiquery/pkg/msi"
)

// DefaultProperties are read for every product when no list is configured.
var DefaultProperties = []msi.Property{
	msi.PropProductName,
	msi.PropVersionString,
	msi.PropPublisher,
	msi.PropInstallDate,
	msi.PropInstallLocation,
	msi.PropLocalPackage,
}

// Record is one installed product.
type Record struct {
	ProductCode string            `json:"product_code" yaml:"product_code"`
	Context     string            `json:"context" yaml:"context"`
	Properties  map[string]string `json:"properties" yaml:"properties"`
}

// Name returns the ProductName property.
func (r Record) Name() string {
	return r.Properties[string(msi.PropProductName)]
}

// Version returns the VersionString property.
func (r Record) Version() string {
	return r.Properties[string(msi.PropVersionString)]
}

// Failure records a product whose properties could not be read.
type Failure struct {
	ProductCode string `json:"product_code" yaml:"product_code"`
	Error       string `json:"error" yaml:"error"`
}

// Report is the result of one inventory run.
type Report struct {
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Host        *Host     `json:"host,omitempty" yaml:"host,omitempty"`
	Products    []Record  `json:"products" yaml:"products"`
	Failures    []Failure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Collector gathers product records through an msi.Client.
type Collector struct {
	client     *msi.Client
	properties []msi.Property
}

// now is abstracted for testing
var now = time.Now

// NewCollector returns a Collector reading props for each product, or
// DefaultProperties when props is empty.
func NewCollector(client *msi.Client, props []msi.Property) *Collector {
	if len(props) == 0 {
		props = DefaultProperties
	}
	return &Collector{client: client, properties: props}
}

// Collect enumerates every product and reads the configured properties.
// A product whose properties cannot be read is listed under Failures; an
// enumeration failure aborts the run and returns what was gathered so far.
func (c *Collector) Collect() (*Report, error) {
	report := &Report{GeneratedAt: now()}

	host, err := collectHost()
	if err != nil {
		logging.Warn("Failed to collect host facts", "error", err)
	}
	report.Host = host

	for p, err := range c.client.Instances() {
		if err != nil {
			sortRecords(report.Products)
			return report, fmt.Errorf("enumerating products: %w", err)
		}

		values, err := c.client.GetProperties(p.Code, c.properties...)
		if err != nil {
			logging.Warn("Failed to read product properties",
				"product", p.Code.String(),
				"error", err,
			)
			report.Failures = append(report.Failures, Failure{ProductCode: p.Code.String(), Error: err.Error()})
			continue
		}

		rec := Record{
			ProductCode: p.Code.String(),
			Context:     p.Context.String(),
			Properties:  make(map[string]string, len(values)),
		}
		for k, v := range values {
			rec.Properties[string(k)] = v
		}
		report.Products = append(report.Products, rec)
	}

	sortRecords(report.Products)
	logging.Info("Inventory collected",
		"products", len(report.Products),
		"failures", len(report.Failures),
	)
	return report, nil
}

func sortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].ProductCode < records[j].ProductCode
	})
}

// CheckProduct reports whether the product is installed and, if minVersion
// is set, whether its VersionString is at least minVersion. A product without
// a VersionString only matches an empty minVersion.
func (c *Collector) CheckProduct(code msi.ProductCode, minVersion string) (installed, versionMatch bool, err error) {
	installedVersion, status := c.client.TryGetProperty(code, msi.PropVersionString)
	switch status.Kind() {
	case msi.KindSuccess:
	case msi.KindUnknownProduct:
		return false, false, nil
	case msi.KindUnknownProperty:
		return true, minVersion == "", nil
	default:
		return false, false, &msi.StatusError{Op: "CheckProduct", Product: code, Property: msi.PropVersionString, Status: status}
	}

	if minVersion == "" {
		return true, true, nil
	}

	if _, err := version.NewVersion(installedVersion); err != nil {
		return true, false, fmt.Errorf("parsing installed version %q of %s: %w", installedVersion, code, err)
	}
	if _, err := version.NewVersion(minVersion); err != nil {
		return true, false, fmt.Errorf("parsing required version %q: %w", minVersion, err)
	}

	versionMatch = !IsOlderVersion(installedVersion, minVersion)
	logging.Info("Compare installed vs required version",
		"product", code.String(),
		"installedVersion", installedVersion,
		"requiredVersion", minVersion,
		"versionMatch", versionMatch,
	)
	return true, versionMatch, nil
}

// IsOlderVersion returns true if local is strictly older than remote.
// Unparsable versions are never considered older.
func IsOlderVersion(local, remote string) bool {
	vLocal, errLocal := version.NewVersion(local)
	vRemote, errRemote := version.NewVersion(remote)
	if errLocal != nil || errRemote != nil {
		logging.Debug("Version parse error",
			"local", local,
			"remote", remote,
			"errLocal", errLocal,
			"errRemote", errRemote,
		)
		return false
	}
	return vLocal.LessThan(vRemote)
}
