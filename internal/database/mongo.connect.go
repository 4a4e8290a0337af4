package database

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"ops_console/config"
	"ops_console/internal/logger"
)

// Tham số pool và timeout cho kết nối Mongo của console.
// Console phục vụ ít operator đồng thời nên pool nhỏ là đủ.
const (
	maxPoolSize    = 50
	minPoolSize    = 10
	connectTimeout = 5 * time.Second
	socketTimeout  = 10 * time.Second
	pingTimeout    = 2 * time.Second
)

// GetInstance kết nối tới MongoDB theo URI trong cấu hình và ping xác nhận
// trước khi trả về client. Mọi collection của console đi qua client này.
func GetInstance(c *config.Configuration) (*mongo.Client, error) {
	if c.MongoDB_ConnectionURI == "" {
		return nil, fmt.Errorf("thiếu MongoDB connection URI trong cấu hình")
	}

	clientOptions := options.Client().
		ApplyURI(c.MongoDB_ConnectionURI).
		SetMaxPoolSize(maxPoolSize).
		SetMinPoolSize(minPoolSize).
		SetConnectTimeout(connectTimeout).
		SetSocketTimeout(socketTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 2*connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("kết nối MongoDB thất bại: %w", err)
	}

	// Connect không chạm mạng ngay — phải ping để biết URI có sống không
	ctxPing, cancelPing := context.WithTimeout(context.Background(), pingTimeout)
	defer cancelPing()
	if err := client.Ping(ctxPing, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping MongoDB thất bại: %w", err)
	}

	logger.GetAppLogger().WithFields(logrus.Fields{
		"max_pool": maxPoolSize,
		"min_pool": minPoolSize,
	}).Info("Đã kết nối MongoDB")
	return client, nil
}

// CloseInstance ngắt kết nối client khi server tắt.
func CloseInstance(client *mongo.Client) error {
	if err := client.Disconnect(context.TODO()); err != nil {
		logger.GetAppLogger().WithError(err).Error("Ngắt kết nối MongoDB thất bại")
		return err
	}
	logger.GetAppLogger().Info("Đã ngắt kết nối MongoDB")
	return nil
}
