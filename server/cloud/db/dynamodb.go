// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package db

import (
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/guregu/dynamo"
)

type DynamoDBDatabase struct {
	svc          *dynamodb.DynamoDB
	db           *dynamo.DB
	passesTable  dynamo.Table
	serversTable dynamo.Table
}

func NewDynamoDBDatabase(session *session.Session, stage string) (*DynamoDBDatabase, error) {
	ddb := &DynamoDBDatabase{svc: dynamodb.New(session)}
	ddb.db = dynamo.NewFromIface(ddb.svc)
	ddb.passesTable = ddb.db.Table("erosion-" + stage + "-passes")
	ddb.serversTable = ddb.db.Table("erosion-" + stage + "-servers")
	return ddb, nil
}

func (ddb *DynamoDBDatabase) UpdateServer(server Server) error {
	return ddb.serversTable.Put(server).Run()
}

func (ddb *DynamoDBDatabase) ReadServersByRegion(region string) (servers []Server, err error) {
	query := ddb.serversTable.Get("region", region).Iter()

	for {
		var server Server
		ok := query.Next(&server)
		if !ok {
			err = query.Err()
			return
		}
		servers = append(servers, server)
	}
}

func (ddb *DynamoDBDatabase) PutPass(pass Pass) error {
	// Same server and millisecond means the same pass was retried
	err := ddb.passesTable.Put(pass).If("attribute_not_exists(id)").Run()
	if err != nil {
		if _, ok := err.(*dynamodb.ConditionalCheckFailedException); ok {
			return nil
		}
	}
	return err
}

func (ddb *DynamoDBDatabase) ReadPasses(server string, limit int) (passes []Pass, err error) {
	query := ddb.passesTable.Get("server", server).Order(dynamo.Descending).Limit(int64(limit)).Iter()

	for {
		var pass Pass
		ok := query.Next(&pass)
		if !ok {
			err = query.Err()
			return
		}
		passes = append(passes, pass)
	}
}
