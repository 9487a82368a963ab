package services

import (
	"context"

	"linkup_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoUserStore implements UserStore on the Users table.
type DynamoUserStore struct {
	Dynamo *DynamoService
}

func userKey(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": StringAttr(userID),
	}
}

func (s *DynamoUserStore) Insert(ctx context.Context, user models.User) error {
	if err := s.Dynamo.PutItem(ctx, models.UsersTable, user); err != nil {
		return storageErr("users.insert", err)
	}
	return nil
}

func (s *DynamoUserStore) FindByID(ctx context.Context, userID string) (*models.User, error) {
	item, err := s.Dynamo.GetItem(ctx, models.UsersTable, userKey(userID))
	if err != nil {
		return nil, storageErr("users.findById", err)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, storageErr("users.findById", err)
	}
	return &user, nil
}

func (s *DynamoUserStore) FindByName(ctx context.Context, name string) (*models.User, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.UsersTable, models.UserNameIndex,
		"#n = :name",
		map[string]types.AttributeValue{":name": StringAttr(name)},
		map[string]string{"#n": "name"}, 1)
	if err != nil {
		return nil, storageErr("users.findByName", err)
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	var user models.User
	if err := attributevalue.UnmarshalMap(items[0], &user); err != nil {
		return nil, storageErr("users.findByName", err)
	}
	return &user, nil
}

func (s *DynamoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var users []models.User
	err := s.Dynamo.ScanWithFilter(ctx, models.UsersTable, func(item map[string]types.AttributeValue) bool {
		attr, ok := item["email"].(*types.AttributeValueMemberS)
		return ok && attr.Value == email
	}, &users)
	if err != nil {
		return nil, storageErr("users.findByEmail", err)
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return &users[0], nil
}

func (s *DynamoUserStore) Update(ctx context.Context, user models.User) error {
	if err := s.Dynamo.PutItemWithCondition(ctx, models.UsersTable, user, "attribute_exists(userId)"); err != nil {
		if IsConditionalCheckFailed(err) {
			return ErrNotFound
		}
		return storageErr("users.update", err)
	}
	return nil
}
