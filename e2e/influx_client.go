package e2e

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
)

// influxTarget provisions and inspects the InfluxDB instance the Influx sink
// writes to during the suite. The suite never writes through it; points come
// in through the sink under test and are only read back here.
type influxTarget struct {
	org    string
	bucket string
	client influxdb2.Client
}

func newInfluxTarget(url, org, bucket, token string) *influxTarget {
	return &influxTarget{
		org:    org,
		bucket: bucket,
		client: influxdb2.NewClient(url, token),
	}
}

// provision creates the organisation and bucket when they do not exist yet,
// so the sink has somewhere to write on a fresh container.
func (t *influxTarget) provision(ctx context.Context) error {
	orgAPI := t.client.OrganizationsAPI()
	org, err := orgAPI.FindOrganizationByName(ctx, t.org)
	if err != nil || org == nil {
		org, err = orgAPI.CreateOrganizationWithName(ctx, t.org)
		if err != nil {
			return fmt.Errorf("create org: %w", err)
		}
	}

	bucketAPI := t.client.BucketsAPI()
	buckets, err := bucketAPI.FindBucketsByOrgName(ctx, t.org)
	if err != nil {
		return err
	}
	if buckets != nil {
		for _, b := range *buckets {
			if b.Name == t.bucket {
				return nil
			}
		}
	}
	if _, err := bucketAPI.CreateBucketWithName(ctx, org, t.bucket); err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}
	return nil
}

// countMeasurement returns how many points of the given measurement landed in
// the bucket within the lookback window.
func (t *influxTarget) countMeasurement(ctx context.Context, measurement string, lookback time.Duration) (int, error) {
	flux := fmt.Sprintf(
		`from(bucket:%q) |> range(start:-%s) |> filter(fn:(r) => r._measurement == %q)`,
		t.bucket, lookback, measurement)
	res, err := t.client.QueryAPI(t.org).Query(ctx, flux)
	if err != nil {
		return 0, err
	}
	defer res.Close()
	count := 0
	for res.Next() {
		count++
	}
	return count, res.Err()
}

func (t *influxTarget) Close() { t.client.Close() }
