package e2e

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	coremetrics "github.com/kilianp07/dispatchconsole/core/metrics"
	"github.com/kilianp07/dispatchconsole/infra/metrics"
)

// junitReport is a minimal representation of a JUnit XML report. The E2E
// suite writes such a report so CI systems can display the results.
type junitReport struct {
	XMLName  xml.Name        `xml:"testsuite"`
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name    string  `xml:"name,attr"`
	Failure *string `xml:"failure,omitempty"`
	Time    float64 `xml:"time,attr"`
}

// writeJUnit writes the provided report to the given path.
func writeJUnit(path string, rep junitReport) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := xml.NewEncoder(f)
	enc.Indent("", "  ")
	return enc.Encode(rep)
}

// startInflux starts an InfluxDB 2.7 container and returns it along with the
// base URL. The container is left running until the context is cancelled.
func startInflux(ctx context.Context, t *testing.T) (tc.Container, string) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "influxdb:2.7",
		ExposedPorts: []string{"8086/tcp"},
		WaitingFor:   wait.ForHTTP("/health").WithPort("8086/tcp").WithStartupTimeout(60 * time.Second),
	}
	cont, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Skipf("unable to start influx container: %v", err)
	}
	host, _ := cont.Host(ctx)
	port, _ := cont.MappedPort(ctx, "8086")
	url := fmt.Sprintf("http://%s:%s", host, port.Port())
	return cont, url
}

// Test_E2E_InfluxSink records console events through the Influx sink and
// verifies they land in the bucket.
func Test_E2E_InfluxSink(t *testing.T) {
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skipf("docker not installed: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	influxCont, influxURL := startInflux(ctx, t)
	if influxCont != nil {
		defer influxCont.Terminate(ctx) //nolint:errcheck
	}
	t.Logf("InfluxDB started at %s", influxURL)

	org := "e2e_org"
	bucket := "e2e_bucket"
	token := "e2e-token"
	target := newInfluxTarget(influxURL, org, bucket, token)
	defer target.Close()
	if err := target.provision(ctx); err != nil {
		t.Fatalf("provision bucket: %v", err)
	}

	sink := metrics.NewInfluxSink(coremetrics.Config{
		InfluxEnabled: true,
		InfluxURL:     influxURL,
		InfluxToken:   token,
		InfluxOrg:     org,
		InfluxBucket:  bucket,
	})
	defer sink.Close()

	now := time.Now()
	if err := sink.RecordPollResult(coremetrics.PollResult{
		Collection: "incidents", Success: true, Count: 3, Duration: 120 * time.Millisecond, Time: now,
	}); err != nil {
		t.Fatalf("record poll: %v", err)
	}
	if err := sink.RecordCommitResult(coremetrics.CommitResult{
		DispatchID: 42, NewVehicleID: 9, Accepted: true, Duration: 80 * time.Millisecond, Time: now,
	}); err != nil {
		t.Fatalf("record commit: %v", err)
	}
	if err := sink.RecordSnapshotSize(coremetrics.SnapshotSize{
		Incidents: 3, Vehicles: 5, Stations: 2, Time: now,
	}); err != nil {
		t.Fatalf("record snapshot: %v", err)
	}

	count, err := target.countMeasurement(ctx, "console_poll", 5*time.Minute)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if count == 0 {
		t.Fatal("no console_poll points returned from Influx")
	}
	t.Logf("Influx query returned %d points", count)

	dir := t.TempDir()
	rep := junitReport{Name: "e2e", Tests: 1, Cases: []junitTestCase{{Name: "Test_E2E_InfluxSink", Time: 0}}}
	if err := writeJUnit(filepath.Join(dir, "e2e.xml"), rep); err != nil {
		t.Logf("write junit: %v", err)
	}
}
