package models_test

import (
	"github.com/habitat-fund/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestClientSelf() {
	assert.Equal(suite.T(), "Client", models.Client{}.Self())
	assert.Equal(suite.T(), "Animal", models.Animal{}.Self())
}

func (suite *TestSuiteStandard) TestClientUsernameNotUnique() {
	_ = suite.createTestClient(models.Client{Username: "alice"})

	err := models.DB.Create(&models.Client{Username: " alice "}).Error
	assert.ErrorIs(suite.T(), err, models.ErrClientUsernameNotUnique)
}

func (suite *TestSuiteStandard) TestClientUsernameEmpty() {
	err := models.DB.Create(&models.Client{}).Error
	assert.ErrorIs(suite.T(), err, models.ErrClientUsernameEmpty)
}

func (suite *TestSuiteStandard) TestClientFavorites() {
	client := suite.createTestClient(models.Client{})

	pikachu := models.Animal{Name: "Pikachu", Species: "Mouse"}
	assert.Nil(suite.T(), models.DB.Create(&pikachu).Error)

	err := models.DB.Model(&client).Association("Favorites").Append(&pikachu)
	assert.Nil(suite.T(), err)

	var loaded models.Animal
	err = models.DB.Preload("FavoritedBy").First(&loaded, "id = ?", pikachu.ID).Error
	assert.Nil(suite.T(), err)
	if assert.Len(suite.T(), loaded.FavoritedBy, 1) {
		assert.Equal(suite.T(), client.Username, loaded.FavoritedBy[0].Username)
	}
}

func (suite *TestSuiteStandard) TestAnimalNameEmpty() {
	err := models.DB.Create(&models.Animal{Name: " "}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAnimalNameEmpty)
}
