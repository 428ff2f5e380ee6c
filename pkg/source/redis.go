package source

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/tablegrid/pkg/errors"
)

// redisPage is the number of list entries fetched per LRANGE call.
const redisPage = 512

// ListReader is the subset of the redis client used to read a list.
// *redis.Client and *redis.ClusterClient satisfy it.
type ListReader interface {
	LLen(ctx context.Context, key string) *redis.IntCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// LoadRedis reads the list at key, one paragraph per entry, and returns it
// as a [Text] source. The list is read once; later changes to it are not
// observed.
func LoadRedis(ctx context.Context, client ListReader, key string) (*Text, error) {
	if err := errors.ValidateKey(key); err != nil {
		return nil, err
	}

	n, err := client.LLen(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "redis LLEN %s", key)
	}
	if n == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "redis list %s is empty or missing", key)
	}

	paragraphs := make([]string, 0, n)
	for start := int64(0); start < n; start += redisPage {
		stop := min(start+redisPage, n) - 1
		page, err := client.LRange(ctx, key, start, stop).Result()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "redis LRANGE %s %d %d", key, start, stop)
		}
		paragraphs = append(paragraphs, page...)
		if int64(len(page)) < stop-start+1 {
			// The list shrank while reading.
			break
		}
	}
	return NewText(paragraphs)
}
