package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/bankass/awards-api/internal/domain"
)

// VotingConfigRepo manages the voting configuration singleton row.
type VotingConfigRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewVotingConfigRepo(client *dynamodb.Client, tableName string) *VotingConfigRepo {
	return &VotingConfigRepo{client: client, tableName: tableName}
}

func (r *VotingConfigRepo) Get(ctx context.Context) (*domain.VotingConfig, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("config_id", domain.VotingConfigID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("voting config not found: %w", domain.ErrNotFound)
	}
	var c domain.VotingConfig
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *VotingConfigRepo) Put(ctx context.Context, c *domain.VotingConfig) error {
	c.ConfigID = domain.VotingConfigID
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal voting config: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}
