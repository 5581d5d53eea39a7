package kv

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	fieldValue   = "value"
	fieldVersion = "version"
)

type redisNamespace struct {
	client *redis.Client
	prefix string
}

// NewRedis returns a Namespace keeping each key in a hash named prefix+key.
func NewRedis(client *redis.Client, prefix string) Namespace {
	return &redisNamespace{client: client, prefix: prefix}
}

func (r *redisNamespace) Get(ctx context.Context, key string) (Entry, error) {
	vals, err := r.client.HMGet(ctx, r.prefix+key, fieldValue, fieldVersion).Result()
	if err != nil {
		return Entry{}, err
	}
	return decodeHash(key, vals)
}

func (r *redisNamespace) Commit(ctx context.Context, writes ...Write) error {
	if err := checkBatch(writes); err != nil {
		return err
	}
	keys := make([]string, len(writes))
	for i, w := range writes {
		keys[i] = r.prefix + w.Key
	}

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		live := make([]bool, len(writes))
		for i, w := range writes {
			vals, err := tx.HMGet(ctx, keys[i], fieldValue, fieldVersion).Result()
			if err != nil {
				return err
			}
			cur, err := decodeHash(w.Key, vals)
			if err != nil {
				return err
			}
			if cur.Version != w.Version {
				return fmt.Errorf("%w: key=%s expected=%d current=%d", ErrConflict, w.Key, w.Version, cur.Version)
			}
			live[i] = cur.Exists()
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for i, w := range writes {
				if w.Delete {
					if live[i] {
						pipe.HDel(ctx, keys[i], fieldValue)
						pipe.HSet(ctx, keys[i], fieldVersion, w.Version+1)
					}
					continue
				}
				pipe.HSet(ctx, keys[i], fieldValue, string(w.Value), fieldVersion, w.Version+1)
			}
			return nil
		})
		return err
	}, keys...)
	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("%w: watched key changed", ErrConflict)
	}
	return err
}

func (r *redisNamespace) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func decodeHash(key string, vals []interface{}) (Entry, error) {
	if len(vals) != 2 || vals[1] == nil {
		return Entry{Key: key}, nil
	}
	raw, _ := vals[1].(string)
	version, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Entry{}, fmt.Errorf("kv redis: key=%s bad version %q: %w", key, raw, err)
	}
	if vals[0] == nil {
		return Entry{Key: key, Version: version, Deleted: true}, nil
	}
	value, _ := vals[0].(string)
	return Entry{Key: key, Value: []byte(value), Version: version}, nil
}
