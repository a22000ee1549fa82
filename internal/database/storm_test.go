package database_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mdouchement/neoloadutility/internal/database"
	"github.com/mdouchement/neoloadutility/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) database.Client {
	t.Helper()

	dbname := filepath.Join(t.TempDir(), "nlutility.db")
	require.NoError(t, database.StormInit(dbname))

	db, err := database.StormOpen(dbname)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
		os.RemoveAll(dbname)
	})

	return db
}

func TestStormSave(t *testing.T) {
	db := setup(t)

	conversion := &model.Conversion{
		Kind:  model.KindCurl,
		Title: "Generated API Specification",
	}
	assert.NoError(t, db.Save(conversion))
	assert.NotEmpty(t, conversion.ID)
	assert.False(t, conversion.CreatedAt.IsZero())
	assert.False(t, conversion.UpdatedAt.IsZero())

	// A second save must not reassign the identifier.
	id := conversion.ID
	conversion.Checksum = "d41d8cd98f00b204e9800998ecf8427e"
	assert.NoError(t, db.Save(conversion))
	assert.Equal(t, id, conversion.ID)

	found, err := db.FindConversion(id)
	assert.NoError(t, err)
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", found.Checksum)
	assert.Equal(t, model.KindCurl, found.Kind)
}

func TestStormListConversions(t *testing.T) {
	db := setup(t)

	conversions, err := db.ListConversions()
	assert.NoError(t, err)
	assert.Empty(t, conversions)

	first := &model.Conversion{Kind: model.KindCurl, Title: "first"}
	assert.NoError(t, db.Save(first))
	time.Sleep(10 * time.Millisecond)
	second := &model.Conversion{Kind: model.KindPostman, Title: "second"}
	assert.NoError(t, db.Save(second))

	conversions, err = db.ListConversions()
	assert.NoError(t, err)
	assert.Len(t, conversions, 2)
	assert.Equal(t, "second", conversions[0].Title)
	assert.Equal(t, "first", conversions[1].Title)
}

func TestStormDeleteConversion(t *testing.T) {
	db := setup(t)

	conversion := &model.Conversion{Kind: model.KindCurlFile, Title: "commands.txt"}
	assert.NoError(t, db.Save(conversion))

	assert.NoError(t, db.DeleteConversion(conversion.ID))

	_, err := db.FindConversion(conversion.ID)
	assert.True(t, db.IsNotFound(err))
}
