package printhost

import (
	"fmt"
	"strings"

	"github.com/comandero/pos-api/pkg/printer"
)

// BuildRegistry parses a printer inventory spec into a driver registry. The
// spec is a comma separated list of name=device pairs, where a device is a
// USB character device path or a host:port network address:
//
//	caja=/dev/usb/lp0,cocina=192.168.1.50:9100
//
// The first entry becomes the default driver unless defaultDriver names
// another one. An empty spec yields a registry with a single null driver so
// the agent still answers and logs instead of printing.
func BuildRegistry(spec, defaultDriver string) (*printer.Registry, error) {
	registry := printer.NewRegistry()

	if strings.TrimSpace(spec) == "" {
		registry.Register("null", printer.NewNullPrinter())
		registry.SetDefault("null")
		return registry, nil
	}

	first := ""
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, device, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		device = strings.TrimSpace(device)
		if !ok || name == "" || device == "" {
			return nil, fmt.Errorf("invalid printer spec %q, expected name=device", pair)
		}

		var p printer.Printer
		if strings.HasPrefix(device, "/") {
			p = printer.NewUSBPrinter(device)
		} else {
			p = printer.NewNetworkPrinter(device)
		}
		registry.Register(name, p)
		if first == "" {
			first = name
		}
	}

	if defaultDriver != "" {
		registry.SetDefault(defaultDriver)
	} else if first != "" {
		registry.SetDefault(first)
	}
	return registry, nil
}
