package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/bankass/awards-api/internal/domain"
)

// VoteRepo provides typed DynamoDB operations for the votes table.
// The vote id is derived from (user_id, category_id), so Put carries the
// replace-on-recast semantics for free.
type VoteRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewVoteRepo(client *dynamodb.Client, tableName string) *VoteRepo {
	return &VoteRepo{client: client, tableName: tableName}
}

func (r *VoteRepo) Put(ctx context.Context, v *domain.Vote) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal vote: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *VoteRepo) Get(ctx context.Context, voteID string) (*domain.Vote, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("vote_id", voteID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("vote not found: %w", domain.ErrNotFound)
	}
	var v domain.Vote
	if err := attributevalue.UnmarshalMap(out.Item, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// ListByUser queries the user_id GSI.
func (r *VoteRepo) ListByUser(ctx context.Context, userID string) ([]domain.Vote, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, err
	}
	var votes []domain.Vote
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &votes); err != nil {
		return nil, err
	}
	return votes, nil
}

// ScanAll returns every vote, following pagination. Used by results and export.
func (r *VoteRepo) ScanAll(ctx context.Context) ([]domain.Vote, error) {
	var votes []domain.Vote
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []domain.Vote
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		votes = append(votes, page...)
		if out.LastEvaluatedKey == nil {
			return votes, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// HardDelete permanently removes a vote item.
func (r *VoteRepo) HardDelete(ctx context.Context, voteID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("vote_id", voteID),
	})
	return err
}
