package upstream

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/ledger/backend/internal/infrastructure/config"
)

// backupPageSize is the device page size the backup provider serves
const backupPageSize = 250

// BackupClient pulls per-device backup usage from the backup provider.
// Devices are keyed by the same asset id the inventory service uses.
type BackupClient struct {
	source httpSource
	logger *zap.Logger
}

// NewBackupClient builds a backup provider client
func NewBackupClient(cfg config.UpstreamEndpoint, logger *zap.Logger) *BackupClient {
	return &BackupClient{
		source: newHTTPSource(cfg, authBearer),
		logger: logger,
	}
}

type devicePayload struct {
	AssetID     int64 `json:"asset_id"`
	BackupBytes int64 `json:"backup_bytes"`
}

type deviceListPayload struct {
	Devices []devicePayload `json:"devices"`
}

// FetchUsage pulls backup usage for every device, in exact bytes keyed by
// asset id. Devices reporting zero usage are included so a decommissioned
// backup resets the stored counter.
func (c *BackupClient) FetchUsage(ctx context.Context) (map[int64]int64, error) {
	usage := make(map[int64]int64)

	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("per_page", strconv.Itoa(backupPageSize))

		var payload deviceListPayload
		if err := c.source.getJSON(ctx, "/api/v2/devices", query, &payload); err != nil {
			return nil, err
		}

		for _, d := range payload.Devices {
			usage[d.AssetID] = d.BackupBytes
		}

		if len(payload.Devices) < backupPageSize {
			break
		}
	}
	return usage, nil
}
