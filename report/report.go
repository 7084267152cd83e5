package report

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"hostreport/models"
)

const (
	TimeLayout          = "2006-01-02 15:04:05"
	NoMatchingProcesses = "No matching processes found."
	DeviceUnavailable   = "<b>🖥️ Device Info</b>\nUnavailable\n"
)

// Assemble renders the snapshot as one Telegram HTML document. It is a pure
// function of its inputs.
func Assemble(s *models.Snapshot, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📅 <b>Report Time:</b> %s\n\n", now.Format(TimeLayout))
	b.WriteString(Device(s.Device))
	b.WriteString("\n")
	b.WriteString(Performance(s.System))
	b.WriteString("\n")
	b.WriteString(Network(s.Network))
	b.WriteString("\n")
	b.WriteString(Processes(s.Processes))

	if len(s.Containers) > 0 {
		b.WriteString("\n\n")
		b.WriteString(Containers(s.Containers))
	}
	if len(s.Latency) > 0 {
		b.WriteString("\n\n")
		b.WriteString(Latency(s.Latency))
	}

	return b.String()
}

func Device(d models.DeviceIdentity) string {
	if !d.Available {
		return DeviceUnavailable
	}

	var b strings.Builder
	b.WriteString("<b>🖥️ Device Info</b>\n")
	if d.Alias != "" {
		fmt.Fprintf(&b, "Alias: <code>%s</code>\n", html.EscapeString(d.Alias))
	}
	fmt.Fprintf(&b, "Name: <code>%s</code>\n", html.EscapeString(d.HostName))
	fmt.Fprintf(&b, "OS: %s\n", html.EscapeString(d.OSDescription))
	return b.String()
}

func Performance(m models.MetricSample) string {
	return "<b>📊 System Performance</b>\n" +
		fmt.Sprintf("CPU Usage: <code>%s%%</code>\n", Percent(m.CPUPercent)) +
		fmt.Sprintf("Memory Usage: <code>%s%%</code> (Available: %s)\n", Percent(m.MemoryPercent), GB(m.MemoryAvailable)) +
		fmt.Sprintf("Disk Usage: <code>%s%%</code> (Free: %s)\n", Percent(m.DiskPercent), GB(m.DiskFree))
}

func Network(n models.NetworkCounters) string {
	return "<b>🌐 Network Info</b>\n" +
		fmt.Sprintf("Sent: <code>%s</code>\n", MB(n.BytesSent)) +
		fmt.Sprintf("Received: <code>%s</code>\n", MB(n.BytesRecv))
}

// Processes renders the filtered list, or the fixed sentinel line when the
// collector found no match.
func Processes(p models.ProcessSnapshot) string {
	if p.NoMatches || len(p.Entries) == 0 {
		return NoMatchingProcesses
	}

	lines := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		lines = append(lines, fmt.Sprintf("• <b>%s</b> (PID: %d)\n  CPU: %s%% | Mem: %s",
			html.EscapeString(e.Name), e.PID, Percent(e.CPUPercent), MB(e.MemoryRSS)))
	}
	return "<b>⚙️ Running Processes</b>\n" + strings.Join(lines, "\n")
}

func Containers(cs []models.ContainerInfo) string {
	lines := make([]string, 0, len(cs))
	for _, c := range cs {
		lines = append(lines, fmt.Sprintf("• <b>%s</b> (%s)\n  %s | %s",
			html.EscapeString(c.Name), html.EscapeString(c.State),
			html.EscapeString(c.Image), html.EscapeString(c.Status)))
	}
	return "<b>🐳 Containers</b>\n" + strings.Join(lines, "\n")
}

func Latency(ls []models.LatencyInfo) string {
	lines := make([]string, 0, len(ls))
	for _, l := range ls {
		target := html.EscapeString(l.Target)
		if !l.Reachable {
			lines = append(lines, target+": unreachable")
			continue
		}
		ms := float64(l.AvgRTT) / float64(time.Millisecond)
		lines = append(lines, fmt.Sprintf("%s: <code>%.2f ms</code> (loss: %s%%)", target, ms, Percent(l.PacketLoss)))
	}
	return "<b>📡 Latency</b>\n" + strings.Join(lines, "\n")
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// PlainText strips the markup for destinations that cannot render it.
func PlainText(doc string) string {
	return html.UnescapeString(tagPattern.ReplaceAllString(doc, ""))
}
