package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/cloudhire/cloudhire-backend/internal/models"
)

// DynamoAPI is the slice of the DynamoDB client this store uses.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Dynamo stores records in a single DynamoDB table. The record's "id" field
// is the one authoritative identity; keyAttr exists because legacy tables
// declared their partition key under a different attribute name, and is
// mapped to and from "id" at the marshalling boundary so no second id field
// ever leaves this package.
type Dynamo struct {
	client  DynamoAPI
	table   string
	keyAttr string
}

// NewDynamo builds a store against the given table. keyAttr is the table's
// declared partition-key attribute name; pass "id" for tables created fresh.
func NewDynamo(client DynamoAPI, table, keyAttr string) *Dynamo {
	if keyAttr == "" {
		keyAttr = "id"
	}
	return &Dynamo{client: client, table: table, keyAttr: keyAttr}
}

func (d *Dynamo) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		d.keyAttr: &types.AttributeValueMemberS{Value: id},
	}
}

func (d *Dynamo) Get(ctx context.Context, id string) (models.Record, error) {
	resp, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key:       d.key(id),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamo get %q: %w", id, err)
	}
	if resp.Item == nil {
		return nil, ErrNotFound
	}
	return d.fromItem(resp.Item)
}

func (d *Dynamo) Put(ctx context.Context, rec models.Record) error {
	item, err := d.toItem(rec)
	if err != nil {
		return err
	}
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamo put %q: %w", rec.ID(), err)
	}
	return nil
}

func (d *Dynamo) Update(ctx context.Context, id string, fields map[string]any) error {
	var upd expression.UpdateBuilder
	for k, v := range fields {
		if k == d.keyAttr || k == "id" {
			continue
		}
		upd = upd.Set(expression.Name(k), expression.Value(v))
	}

	expr, err := expression.NewBuilder().WithUpdate(upd).Build()
	if err != nil {
		return fmt.Errorf("dynamo build update for %q: %w", id, err)
	}

	_, err = d.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(d.table),
		Key:                       d.key(id),
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return fmt.Errorf("dynamo update %q: %w", id, err)
	}
	return nil
}

func (d *Dynamo) Delete(ctx context.Context, id string) error {
	_, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.table),
		Key:       d.key(id),
	})
	if err != nil {
		return fmt.Errorf("dynamo delete %q: %w", id, err)
	}
	return nil
}

func (d *Dynamo) Scan(ctx context.Context) ([]models.Record, error) {
	var out []models.Record
	p := dynamodb.NewScanPaginator(d.client, &dynamodb.ScanInput{
		TableName: aws.String(d.table),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("dynamo scan: %w", err)
		}
		for _, item := range page.Items {
			rec, err := d.fromItem(item)
			if err != nil {
				return nil, err
			}
			out = append(out, rec)
		}
	}
	return out, nil
}

func (d *Dynamo) toItem(rec models.Record) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(map[string]any(rec))
	if err != nil {
		return nil, fmt.Errorf("dynamo marshal %q: %w", rec.ID(), err)
	}
	if d.keyAttr != "id" {
		item[d.keyAttr] = &types.AttributeValueMemberS{Value: rec.ID()}
	}
	return item, nil
}

func (d *Dynamo) fromItem(item map[string]types.AttributeValue) (models.Record, error) {
	doc := map[string]any{}
	if err := attributevalue.UnmarshalMap(item, &doc); err != nil {
		return nil, fmt.Errorf("dynamo unmarshal item: %w", err)
	}
	rec := models.Record(doc)
	if d.keyAttr != "id" {
		if rec.ID() == "" {
			if k, ok := doc[d.keyAttr].(string); ok {
				rec["id"] = k
			}
		}
		delete(rec, d.keyAttr)
	}
	return rec, nil
}
