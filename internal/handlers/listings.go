package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"servicehub/api/internal/models"
	"servicehub/api/internal/service"
)

type listingRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
}

func (req listingRequest) toInput() service.ListingInput {
	return service.ListingInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
	}
}

type listingOwnerResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type listingResponse struct {
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Price       float64               `json:"price"`
	CreatedBy   *listingOwnerResponse `json:"createdBy"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

func toListingResponse(listing models.Listing) listingResponse {
	resp := listingResponse{
		ID:          listing.ID,
		Title:       listing.Title,
		Description: listing.Description,
		Category:    listing.Category,
		Price:       listing.Price,
		CreatedAt:   listing.CreatedAt,
		UpdatedAt:   listing.UpdatedAt,
	}
	if listing.Owner != nil {
		resp.CreatedBy = &listingOwnerResponse{
			ID:        listing.Owner.ID,
			FirstName: listing.Owner.FirstName,
			LastName:  listing.Owner.LastName,
			Email:     listing.Owner.Email,
		}
	}
	return resp
}

func toListingResponses(listings []models.Listing) []listingResponse {
	resp := make([]listingResponse, 0, len(listings))
	for _, listing := range listings {
		resp = append(resp, toListingResponse(listing))
	}
	return resp
}

func (h HandlerSet) ListListings(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.listingService.ListPage(c.Request.Context(), page, limit)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"listings":      toListingResponses(result.Listings),
		"currentPage":   result.CurrentPage,
		"totalPages":    result.TotalPages,
		"totalListings": result.TotalListings,
	})
}

func (h HandlerSet) GetListing(c *gin.Context) {
	listing, err := h.listingService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toListingResponse(listing))
}

func (h HandlerSet) CreateListing(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}

	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	listing, err := h.listingService.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toListingResponse(listing))
}

func (h HandlerSet) MyListings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}

	listings, err := h.listingService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toListingResponses(listings))
}

func (h HandlerSet) UpdateListing(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}

	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	listing, err := h.listingService.Update(c.Request.Context(), c.Param("id"), userID, req.toInput())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toListingResponse(listing))
}

func (h HandlerSet) DeleteListing(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}

	if err := h.listingService.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Listing removed"})
}
