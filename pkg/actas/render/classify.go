package render

import "strings"

// Equipment category labels.
const (
	CategoryServer  = "Servidor"
	CategoryCPU     = "CPU"
	CategoryLaptop  = "Laptop"
	CategoryWindows = "PC Escritorio/Laptop"
	CategoryLinux   = "Estación Linux"
	CategoryMac     = "Mac"
	CategoryGeneric = "Equipo Informático"

	CategoryMonitor  = "Monitor"
	CategoryKeyboard = "Teclado"
	CategoryPointing = "Mouse"
)

// ClassifyEquipment maps the OS name and BIOS chassis type of a primary
// device to its category label. Checks run in a fixed order; the first match
// wins.
func ClassifyEquipment(osLabel, chassisType string) string {
	osName := strings.ToLower(osLabel)
	chassis := strings.ToLower(chassisType)

	switch {
	case strings.Contains(osName, "windows") && strings.Contains(osName, "server"):
		return CategoryServer
	case strings.Contains(chassis, "desktop"):
		return CategoryCPU
	case strings.Contains(chassis, "notebook"):
		return CategoryLaptop
	case strings.Contains(osName, "windows"):
		return CategoryWindows
	case strings.Contains(osName, "linux"):
		return CategoryLinux
	case strings.Contains(osName, "mac"):
		return CategoryMac
	}
	return CategoryGeneric
}
