package report

import (
	"math"
	"strings"
	"testing"
	"time"

	"hostreport/models"
)

func fixture() *models.Snapshot {
	return &models.Snapshot{
		Device: models.DeviceIdentity{
			HostName:      "box",
			OSDescription: "Linux 6.8.0",
			Alias:         "edge-1",
			Available:     true,
		},
		System: models.MetricSample{
			CPUPercent:      12.5,
			MemoryPercent:   40,
			MemoryAvailable: 2147483648,
			DiskPercent:     71.3,
			DiskFree:        10737418240,
		},
		Network: models.NetworkCounters{BytesSent: 1048576, BytesRecv: 3670016},
		Processes: models.ProcessSnapshot{
			Filter: "NS",
			Entries: []models.ProcessEntry{
				{PID: 10, Name: "NSServer", CPUPercent: 0, MemoryRSS: 52428800},
				{PID: 13, Name: "ns-agent", CPUPercent: 3.25, MemoryRSS: 1572864},
			},
		},
	}
}

var fixedNow = time.Date(2024, 3, 9, 7, 5, 3, 0, time.UTC)

func TestAssembleGolden(t *testing.T) {
	want := "📅 <b>Report Time:</b> 2024-03-09 07:05:03\n\n" +
		"<b>🖥️ Device Info</b>\n" +
		"Alias: <code>edge-1</code>\n" +
		"Name: <code>box</code>\n" +
		"OS: Linux 6.8.0\n" +
		"\n" +
		"<b>📊 System Performance</b>\n" +
		"CPU Usage: <code>12.5%</code>\n" +
		"Memory Usage: <code>40.0%</code> (Available: 2.00 GB)\n" +
		"Disk Usage: <code>71.3%</code> (Free: 10.00 GB)\n" +
		"\n" +
		"<b>🌐 Network Info</b>\n" +
		"Sent: <code>1.00 MB</code>\n" +
		"Received: <code>3.50 MB</code>\n" +
		"\n" +
		"<b>⚙️ Running Processes</b>\n" +
		"• <b>NSServer</b> (PID: 10)\n" +
		"  CPU: 0.0% | Mem: 50.00 MB\n" +
		"• <b>ns-agent</b> (PID: 13)\n" +
		"  CPU: 3.25% | Mem: 1.50 MB"

	if got := Assemble(fixture(), fixedNow); got != want {
		t.Fatalf("unexpected report:\n%s\n--- want ---\n%s", got, want)
	}
}

func TestAssembleDeterministic(t *testing.T) {
	first := Assemble(fixture(), fixedNow)
	for i := 0; i < 5; i++ {
		if got := Assemble(fixture(), fixedNow); got != first {
			t.Fatalf("run %d differs:\n%s\n---\n%s", i, got, first)
		}
	}
}

func TestAssembleNoMatches(t *testing.T) {
	s := fixture()
	s.Processes = models.ProcessSnapshot{Filter: "postgres", NoMatches: true}

	got := Assemble(s, fixedNow)
	if !strings.HasSuffix(got, "\n\n"+NoMatchingProcesses) {
		t.Fatalf("expected sentinel at the end, got:\n%s", got)
	}
	if strings.Contains(got, "Running Processes") {
		t.Fatalf("sentinel must replace the section title")
	}
	if Processes(models.ProcessSnapshot{}) != NoMatchingProcesses {
		t.Fatalf("empty list must render the sentinel, never an empty string")
	}
}

func TestAssembleDeviceUnavailable(t *testing.T) {
	s := fixture()
	s.Device = models.DeviceIdentity{}

	got := Assemble(s, fixedNow)
	if !strings.Contains(got, "\n\n<b>🖥️ Device Info</b>\nUnavailable\n\n<b>📊") {
		t.Fatalf("expected unavailable device section, got:\n%s", got)
	}
}

func TestDeviceWithoutAlias(t *testing.T) {
	got := Device(models.DeviceIdentity{HostName: "box", OSDescription: "Linux 6.8.0", Available: true})
	want := "<b>🖥️ Device Info</b>\nName: <code>box</code>\nOS: Linux 6.8.0\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestAssembleEscapesHostStrings(t *testing.T) {
	s := fixture()
	s.Device.Alias = "a<b>&c"
	s.Processes.Entries[0].Name = "<NS>"

	got := Assemble(s, fixedNow)
	if !strings.Contains(got, "Alias: <code>a&lt;b&gt;&amp;c</code>") {
		t.Fatalf("alias not escaped:\n%s", got)
	}
	if !strings.Contains(got, "• <b>&lt;NS&gt;</b> (PID: 10)") {
		t.Fatalf("process name not escaped:\n%s", got)
	}
}

func TestAssembleOptionalSections(t *testing.T) {
	s := fixture()
	s.Containers = []models.ContainerInfo{{ID: "abc", Name: "web", Image: "nginx:1.27", State: "running", Status: "Up 2 hours"}}
	s.Latency = []models.LatencyInfo{
		{Target: "1.1.1.1", AvgRTT: 12346 * time.Microsecond, Reachable: true},
		{Target: "10.0.0.9", PacketLoss: 100},
	}

	got := Assemble(s, fixedNow)
	want := "  CPU: 3.25% | Mem: 1.50 MB\n\n" +
		"<b>🐳 Containers</b>\n" +
		"• <b>web</b> (running)\n" +
		"  nginx:1.27 | Up 2 hours\n\n" +
		"<b>📡 Latency</b>\n" +
		"1.1.1.1: <code>12.35 ms</code> (loss: 0.0%)\n" +
		"10.0.0.9: unreachable"
	if !strings.HasSuffix(got, want) {
		t.Fatalf("unexpected tail:\n%s", got)
	}
}

func TestUnitConversion(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{GB(2147483648), "2.00 GB"},
		{GB(0), "0.00 GB"},
		{GB(1610612736), "1.50 GB"},
		{MB(1048576), "1.00 MB"},
		{MB(1572864), "1.50 MB"},
		{MB(1), "0.00 MB"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := map[float64]string{
		0:                  "0.0",
		3:                  "3.0",
		12.5:               "12.5",
		33.333333333333336: "33.333333333333336",
		100:                "100.0",
	}
	for in, want := range tests {
		if got := Percent(in); got != want {
			t.Errorf("Percent(%v) = %q, want %q", in, got, want)
		}
	}
	if got := Percent(math.NaN()); got != "NaN" {
		t.Errorf("Percent(NaN) = %q", got)
	}
}

func TestPlainText(t *testing.T) {
	s := fixture()
	s.Device.Alias = "a&b"

	got := PlainText(Assemble(s, fixedNow))
	if strings.ContainsAny(got, "<>") {
		t.Fatalf("markup left in plain text:\n%s", got)
	}
	for _, want := range []string{
		"📅 Report Time: 2024-03-09 07:05:03",
		"Alias: a&b\n",
		"CPU Usage: 12.5%\n",
		"• NSServer (PID: 10)",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in:\n%s", want, got)
		}
	}
}
