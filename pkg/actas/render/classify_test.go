package render

import "testing"

func TestClassifyEquipment(t *testing.T) {
	tests := []struct {
		osLabel  string
		chassis  string
		expected string
	}{
		{"Microsoft Windows Server 2019 Standard", "", CategoryServer},
		{"Windows Server 2019", "Desktop", CategoryServer},
		{"Microsoft Windows 10 Pro", "Desktop", CategoryCPU},
		{"Microsoft Windows 11 Pro", "Notebook", CategoryLaptop},
		{"Microsoft Windows 10 Pro", "", CategoryWindows},
		{"MICROSOFT WINDOWS 7", "Unknown", CategoryWindows},
		{"Ubuntu Linux 22.04", "", CategoryLinux},
		{"macOS Sonoma", "", CategoryMac},
		{"Ubuntu Linux 22.04", "Notebook", CategoryLaptop},
		{"Linux Server", "", CategoryLinux},
		{"", "", CategoryGeneric},
		{"FreeBSD 14", "Rack Mount Chassis", CategoryGeneric},
	}

	for _, tt := range tests {
		result := ClassifyEquipment(tt.osLabel, tt.chassis)
		if result != tt.expected {
			t.Errorf("ClassifyEquipment(%q, %q) = %q, expected %q",
				tt.osLabel, tt.chassis, result, tt.expected)
		}
	}
}

func TestClassifyEquipmentIsDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := ClassifyEquipment("Windows Server 2019", ""); got != CategoryServer {
			t.Fatalf("run %d: got %q", i, got)
		}
	}
}
