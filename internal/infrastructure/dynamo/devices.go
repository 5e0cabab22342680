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

// DeviceRegistrationRepo provides typed DynamoDB operations for the
// device_registrations audit table. Append-only.
type DeviceRegistrationRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewDeviceRegistrationRepo(client *dynamodb.Client, tableName string) *DeviceRegistrationRepo {
	return &DeviceRegistrationRepo{client: client, tableName: tableName}
}

func (r *DeviceRegistrationRepo) Put(ctx context.Context, d *domain.DeviceRegistration) error {
	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return fmt.Errorf("marshal device registration: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// ListByUser queries the user_id GSI.
func (r *DeviceRegistrationRepo) ListByUser(ctx context.Context, userID string) ([]domain.DeviceRegistration, error) {
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
	var regs []domain.DeviceRegistration
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}
