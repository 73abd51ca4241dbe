package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/gypsumstore/internal/domain/catalog"
	"github.com/xiebiao/gypsumstore/pkg/metrics"
)

const searchKeyPrefix = "search:"

// SearchCache 商品搜索结果缓存（Cache-Aside）
// 先查缓存，未命中再查数据库并回写；商品或分类变更后整体失效
type SearchCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSearchCache 创建搜索缓存
func NewSearchCache(client *redis.Client, ttl time.Duration) *SearchCache {
	return &SearchCache{client: client, ttl: ttl}
}

// Get 读取缓存，未命中时ok为false
func (c *SearchCache) Get(ctx context.Context, keyword string) ([]*catalog.Product, bool, error) {
	val, err := c.client.Get(ctx, searchKey(keyword)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.IncCounterVec(metrics.SearchCacheTotal, map[string]string{"result": "miss"})
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("获取缓存失败: %w", err)
	}

	var products []*catalog.Product
	if err := json.Unmarshal(val, &products); err != nil {
		return nil, false, fmt.Errorf("反序列化失败: %w", err)
	}

	metrics.IncCounterVec(metrics.SearchCacheTotal, map[string]string{"result": "hit"})
	return products, true, nil
}

// Set 写入缓存
func (c *SearchCache) Set(ctx context.Context, keyword string, products []*catalog.Product) error {
	val, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}
	if err := c.client.Set(ctx, searchKey(keyword), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}
	return nil
}

// Invalidate 删除全部搜索缓存
// 使用SCAN分批遍历，避免KEYS阻塞Redis
func (c *SearchCache) Invalidate(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, searchKeyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("扫描缓存失败: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Unlink(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("删除缓存失败: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func searchKey(keyword string) string {
	return searchKeyPrefix + strings.ToLower(strings.TrimSpace(keyword))
}
