package repository

import "go.mongodb.org/mongo-driver/bson"

const (
	datePattern  = `^[0-9]{4}-[0-9]{2}-[0-9]{2}$`
	clockPattern = `^([01]?[0-9]|2[0-3]):[0-5][0-9]$`
)

var clockProperty = bson.M{
	"bsonType": "string",
	"pattern":  clockPattern,
}

var bookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"date",
			"resource",
			"timeFrom",
			"timeTo",
			"bufferFrom",
			"bufferTo",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  datePattern,
			},

			"resource": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 200,
			},

			"timeFrom":   clockProperty,
			"timeTo":     clockProperty,
			"bufferFrom": clockProperty,
			"bufferTo":   clockProperty,

			"requestedBy": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"createdAt": bson.M{
				"bsonType": "date",
			},
		},
	},
}
