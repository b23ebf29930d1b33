package cache

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"
)

// ValkeyCache is a Cache shared between processes, backed by Valkey
type ValkeyCache struct {
	client valkey.Client
	prefix string
}

// NewValkeyCache connects to the Valkey server at valkeyURL. Every key is stored under prefix.
func NewValkeyCache(ctx context.Context, valkeyURL, prefix string) (*ValkeyCache, error) {
	opt, err := parseValkeyURL(valkeyURL)
	if err != nil {
		return nil, fmt.Errorf("parse valkey url: %w", err)
	}

	client, err := valkey.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("create valkey client: %w", err)
	}

	vc := &ValkeyCache{client: client, prefix: prefix}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := vc.Health(pingCtx); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to valkey at %s: %w", strings.Join(opt.InitAddress, ","), err)
	}
	return vc, nil
}

func (c *ValkeyCache) key(key string) string {
	return c.prefix + key
}

func (c *ValkeyCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Do(ctx, c.client.B().Get().Key(c.key(key)).Build()).AsBytes()
	switch {
	case valkey.IsValkeyNil(err):
		return nil, nil
	case err != nil:
		return nil, &CacheError{Operation: "get", Key: key, Err: err}
	}
	return data, nil
}

// Set writes value under key. A non-positive ttl stores it without expiry.
func (c *ValkeyCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	set := c.client.B().Set().Key(c.key(key)).Value(valkey.BinaryString(value))
	var cmd valkey.Completed
	if ttl > 0 {
		cmd = set.Ex(ttl).Build()
	} else {
		cmd = set.Build()
	}
	if err := c.client.Do(ctx, cmd).Error(); err != nil {
		return &CacheError{Operation: "set", Key: key, Err: err}
	}
	return nil
}

func (c *ValkeyCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Do(ctx, c.client.B().Del().Key(c.key(key)).Build()).Error(); err != nil {
		return &CacheError{Operation: "delete", Key: key, Err: err}
	}
	return nil
}

func (c *ValkeyCache) Close() error {
	c.client.Close()
	return nil
}

// Health sends PING
func (c *ValkeyCache) Health(ctx context.Context) error {
	if err := c.client.Do(ctx, c.client.B().Ping().Build()).Error(); err != nil {
		return fmt.Errorf("valkey ping: %w", err)
	}
	return nil
}

// parseValkeyURL turns valkey://[:password@]host:port[/db] into client options
func parseValkeyURL(valkeyURL string) (valkey.ClientOption, error) {
	var opt valkey.ClientOption

	u, err := url.Parse(valkeyURL)
	if err != nil {
		return opt, fmt.Errorf("invalid URL format: %w", err)
	}

	if u.Host == "" {
		return opt, fmt.Errorf("missing host in URL")
	}
	opt.InitAddress = []string{u.Host}

	if u.User != nil {
		opt.Username = u.User.Username()
		if password, ok := u.User.Password(); ok {
			opt.Password = password
		}
	}

	if db := strings.TrimPrefix(u.Path, "/"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return opt, fmt.Errorf("invalid database number %q", db)
		}
		opt.SelectDB = n
	}

	return opt, nil
}
