package dynamo

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/bankass/awards-api/internal/domain"
)

// AdminMessageRepo provides typed DynamoDB operations for the admin_messages table.
type AdminMessageRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewAdminMessageRepo(client *dynamodb.Client, tableName string) *AdminMessageRepo {
	return &AdminMessageRepo{client: client, tableName: tableName}
}

func (r *AdminMessageRepo) Put(ctx context.Context, m *domain.AdminMessage) error {
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return fmt.Errorf("marshal admin message: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *AdminMessageRepo) Get(ctx context.Context, messageID string) (*domain.AdminMessage, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("message_id", messageID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("admin message not found: %w", domain.ErrNotFound)
	}
	var m domain.AdminMessage
	if err := attributevalue.UnmarshalMap(out.Item, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Scan returns all admin messages, newest first. The table stays small, so a
// full scan with an in-memory sort beats maintaining a GSI for it.
func (r *AdminMessageRepo) Scan(ctx context.Context) ([]domain.AdminMessage, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{TableName: aws.String(r.tableName)})
	if err != nil {
		return nil, err
	}
	var messages []domain.AdminMessage
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &messages); err != nil {
		return nil, err
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
	return messages, nil
}

// HardDelete permanently removes an admin message item.
func (r *AdminMessageRepo) HardDelete(ctx context.Context, messageID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("message_id", messageID),
	})
	return err
}
