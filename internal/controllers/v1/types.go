package v1

import (
	ez_uuid "github.com/habitat-fund/backend/internal/uuid"
)

type URIID struct {
	ID ez_uuid.UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}

type URIName struct {
	Name string `uri:"name" binding:"required"` // Name of the resource
}

type URIFavorite struct {
	URIID
	AnimalID ez_uuid.UUID `uri:"animalId" binding:"required" format:"UUID"` // ID of the animal
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}
