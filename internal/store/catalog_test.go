package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProductFilterEmpty(t *testing.T) {
	assert.Empty(t, ProductFilter(ProductQuery{}))
}

func TestProductFilterAllFields(t *testing.T) {
	maxPrice := 6.5
	filter := ProductFilter(ProductQuery{
		Categories: []string{"cone", "tub"},
		Sizes:      []string{"small"},
		MaxPrice:   &maxPrice,
		Search:     "Choc",
	})

	assert.Equal(t, bson.M{"$in": []string{"cone", "tub"}}, filter["category"])
	assert.Equal(t, bson.M{"$in": []string{"small"}}, filter["size"])
	assert.Equal(t, bson.M{"$lte": 6.5}, filter["price"])
	assert.Equal(t, bson.M{"$regex": "Choc", "$options": "i"}, filter["name"])
}

func TestProductFilterEscapesSearch(t *testing.T) {
	filter := ProductFilter(ProductQuery{Search: "mint (x2)+"})

	name := filter["name"].(bson.M)
	assert.Equal(t, `mint \(x2\)\+`, name["$regex"])
}

func TestProductFilterIDsReplaceSearch(t *testing.T) {
	oid := primitive.NewObjectID()
	filter := ProductFilter(ProductQuery{Search: "vanilla", IDs: []string{oid.Hex(), "not-an-id"}})

	_, hasName := filter["name"]
	assert.False(t, hasName)
	ids := filter["_id"].(bson.M)["$in"].([]primitive.ObjectID)
	require.Len(t, ids, 1)
	assert.Equal(t, oid, ids[0])
}

func TestProductSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, ProductSort(SortPriceAsc))
	assert.Equal(t, bson.D{{Key: "price", Value: -1}}, ProductSort(SortPriceDesc))
	assert.Nil(t, ProductSort(""))
	assert.Nil(t, ProductSort("name"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
}
