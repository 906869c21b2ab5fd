/*
 * Copyright 2025 The DocVault Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	// ColVaults represents the vaults collection in the database.
	ColVaults = "vaults"
	// ColGrants represents the grants collection in the database.
	ColGrants = "grants"
	// ColSequences represents the sequences collection in the database.
	ColSequences = "sequences"
)

// Collections represents the list of all collections in the database.
var Collections = []string{
	ColVaults,
	ColGrants,
	ColSequences,
}

type collectionInfo struct {
	name    string
	indexes []mongo.IndexModel
}

// Below are names and indexes information of Collections that stores DocVault data.
var collectionInfos = []collectionInfo{
	{
		name: ColVaults,
		indexes: []mongo.IndexModel{{
			Keys:    bson.D{{Key: "vault_id", Value: int32(1)}},
			Options: options.Index().SetUnique(true),
		}, {
			Keys: bson.D{
				{Key: "owner", Value: int32(1)},
				{Key: "vault_id", Value: int32(1)},
			},
		}},
	},
	{
		name: ColGrants,
		indexes: []mongo.IndexModel{{
			Keys: bson.D{
				{Key: "vault_id", Value: int32(1)},
				{Key: "delegate", Value: int32(1)},
			},
			Options: options.Index().SetUnique(true),
		}},
	},
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, info := range collectionInfos {
		_, err := db.Collection(info.name).Indexes().CreateMany(ctx, info.indexes)
		if err != nil {
			return fmt.Errorf("create indexes: %w", err)
		}
	}
	return nil
}
