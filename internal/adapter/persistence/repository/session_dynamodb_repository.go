package repository

import (
	"context"
	"time"

	"taller_web/internal/domain/entities"
	"taller_web/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultSessionsTableName = "sessions"

type sessionItem struct {
	SID       string `dynamodbav:"sid"`
	Token     string `dynamodbav:"token"`
	Usuario   string `dynamodbav:"usuario"`
	CreatedAt string `dynamodbav:"created_at"`
}

// SessionDynamoRepository persists session records in DynamoDB.
//
// Table requirements:
//   - PK: sid (string)
//
// The profile column stores the backend's login payload verbatim; it is never
// parsed here, so a corrupted row still loads and fails closed at use time.
type SessionDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ISessionRepository = (*SessionDynamoRepository)(nil)

func NewSessionDynamoRepository(ddb *dynamodb.Client, tableName string) *SessionDynamoRepository {
	if tableName == "" {
		tableName = getenvDefault("SESSIONS_TABLE", defaultSessionsTableName)
	}
	return &SessionDynamoRepository{
		ddb:       ddb,
		tableName: tableName,
	}
}

func (r *SessionDynamoRepository) Put(ctx context.Context, s entities.Session) error {
	av, err := attributevalue.MarshalMap(toSessionItem(s))
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	return err
}

func (r *SessionDynamoRepository) Get(ctx context.Context, sid string) (entities.Session, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"sid": &types.AttributeValueMemberS{Value: sid},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Session{}, err
	}
	if len(out.Item) == 0 {
		return entities.Session{}, nil
	}

	var it sessionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Session{}, err
	}
	return fromSessionItem(it), nil
}

func (r *SessionDynamoRepository) Delete(ctx context.Context, sid string) error {
	// DeleteItem on a missing key succeeds, which gives us idempotent logout.
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"sid": &types.AttributeValueMemberS{Value: sid},
		},
	})
	return err
}

func toSessionItem(s entities.Session) sessionItem {
	return sessionItem{
		SID:       s.SID,
		Token:     s.Token,
		Usuario:   s.RawUser,
		CreatedAt: s.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromSessionItem(it sessionItem) entities.Session {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Session{
		SID:       it.SID,
		Token:     it.Token,
		RawUser:   it.Usuario,
		CreatedAt: createdAt,
	}
}
