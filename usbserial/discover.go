package usbserial

import (
	"fmt"
	"slices"
	"strings"

	"go.bug.st/serial/enumerator"
)

// USB identifiers of SenXor boards.
const (
	VendorID = "0416"

	ProductEVK  = "B002"
	ProductXPRO = "B020"
	ProductXCAM = "9393"
)

// ProductIDs lists the USB product IDs recognised by Discover.
var ProductIDs = []string{ProductEVK, ProductXPRO, ProductXCAM}

var listPorts = enumerator.GetDetailedPortsList

// PortInfo describes a serial port with a SenXor attached.
type PortInfo struct {
	Name         string
	PID          string
	Product      string
	SerialNumber string
}

// Discover lists the serial ports backed by a SenXor USB device.
func Discover() ([]PortInfo, error) {
	details, err := listPorts()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	var ports []PortInfo
	for _, d := range details {
		if !d.IsUSB || !strings.EqualFold(d.VID, VendorID) {
			continue
		}
		pid := strings.ToUpper(d.PID)
		if !slices.Contains(ProductIDs, pid) {
			continue
		}
		ports = append(ports, PortInfo{
			Name:         d.Name,
			PID:          pid,
			Product:      d.Product,
			SerialNumber: d.SerialNumber,
		})
	}
	return ports, nil
}
