package handlers

import (
	"errors"
	"net/http"
	"strings"

	"printpack/models"
	"printpack/repository"
	"printpack/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var titleCaser = cases.Title(language.Und)

// normalizeName trims and title-cases a lookup display name.
func normalizeName(name string) string {
	return titleCaser.String(strings.TrimSpace(name))
}

// CreateBrand godoc
// @Summary      Create a brand
// @Tags         lookups
// @Accept       json
// @Produce      json
// @Param        body  body  models.Brand  true  "Brand payload"
// @Success      201  {object}  models.APIResponse
// @Failure      409  {object}  models.APIResponse
// @Router       /api/s1/brands [post]
func CreateBrand(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var brand models.Brand
		if err := c.ShouldBindJSON(&brand); err != nil || strings.TrimSpace(brand.BrandName) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Required fields missing"})
			return
		}
		brand.BrandName = normalizeName(brand.BrandName)

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		// The unique index is the duplicate check; a pre-read would race
		// with concurrent creates.
		if err := db.WithContext(ctx).Create(&brand).Error; err != nil {
			if repository.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Brand already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Brand created", "data": brand})
	}
}

// GetBrands godoc
// @Summary      List brands
// @Tags         lookups
// @Produce      json
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/brands [get]
func GetBrands(db *gorm.DB) gin.HandlerFunc {
	return listLookup(func(ctx *gin.Context, q *gorm.DB) (interface{}, error) {
		var brands []models.Brand
		err := q.Order("brand_name").Find(&brands).Error
		return brands, err
	}, db)
}

// DeleteBrand godoc
// @Summary      Delete a brand
// @Tags         lookups
// @Produce      json
// @Param        id  path  int  true  "Brand ID"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/brands/{id} [delete]
func DeleteBrand(db *gorm.DB) gin.HandlerFunc {
	return deleteLookup(db, func(q *gorm.DB, id int) *gorm.DB {
		return q.Delete(&models.Brand{}, id)
	}, "Brand")
}

// DeleteBrands godoc
// @Summary      Delete multiple brands
// @Tags         lookups
// @Accept       json
// @Produce      json
// @Param        body  body  models.DeleteBrandsRequest  true  "Brand IDs"
// @Success      200  {object}  models.APIResponse
// @Failure      400  {object}  models.APIResponse
// @Router       /api/s1/brands [delete]
func DeleteBrands(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.DeleteBrandsRequest
		if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "ids array is required"})
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		if err := db.WithContext(ctx).Delete(&models.Brand{}, req.IDs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Selected brands deleted"})
	}
}

// CreateFlavour godoc
// @Summary      Create a flavour
// @Tags         lookups
// @Accept       json
// @Produce      json
// @Param        body  body  models.Flavour  true  "Flavour payload"
// @Success      201  {object}  models.APIResponse
// @Failure      409  {object}  models.APIResponse
// @Router       /api/s1/flavours [post]
func CreateFlavour(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var flavour models.Flavour
		if err := c.ShouldBindJSON(&flavour); err != nil || strings.TrimSpace(flavour.FlavourName) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Required fields missing"})
			return
		}
		flavour.FlavourName = normalizeName(flavour.FlavourName)

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		if err := db.WithContext(ctx).Create(&flavour).Error; err != nil {
			if repository.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Flavour already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Flavour created", "data": flavour})
	}
}

// GetFlavours godoc
// @Summary      List flavours
// @Tags         lookups
// @Produce      json
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/flavours [get]
func GetFlavours(db *gorm.DB) gin.HandlerFunc {
	return listLookup(func(ctx *gin.Context, q *gorm.DB) (interface{}, error) {
		var flavours []models.Flavour
		err := q.Order("flavour_name").Find(&flavours).Error
		return flavours, err
	}, db)
}

// DeleteFlavour godoc
// @Summary      Delete a flavour
// @Tags         lookups
// @Produce      json
// @Param        id  path  int  true  "Flavour ID"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/flavours/{id} [delete]
func DeleteFlavour(db *gorm.DB) gin.HandlerFunc {
	return deleteLookup(db, func(q *gorm.DB, id int) *gorm.DB {
		return q.Delete(&models.Flavour{}, id)
	}, "Flavour")
}

// CreatePackType godoc
// @Summary      Create a pack type
// @Tags         lookups
// @Accept       json
// @Produce      json
// @Param        body  body  models.PackType  true  "Pack type payload"
// @Success      201  {object}  models.APIResponse
// @Failure      409  {object}  models.APIResponse
// @Router       /api/s1/packtypes [post]
func CreatePackType(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var packType models.PackType
		if err := c.ShouldBindJSON(&packType); err != nil || strings.TrimSpace(packType.PackTypeName) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Required fields missing"})
			return
		}
		packType.PackTypeName = normalizeName(packType.PackTypeName)

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		if err := db.WithContext(ctx).Create(&packType).Error; err != nil {
			if repository.IsDuplicateKey(err) {
				c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Pack type already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Pack type created", "data": packType})
	}
}

// GetPackTypes godoc
// @Summary      List pack types
// @Tags         lookups
// @Produce      json
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/packtypes [get]
func GetPackTypes(db *gorm.DB) gin.HandlerFunc {
	return listLookup(func(ctx *gin.Context, q *gorm.DB) (interface{}, error) {
		var packTypes []models.PackType
		err := q.Order("pack_type_name").Find(&packTypes).Error
		return packTypes, err
	}, db)
}

// DeletePackType godoc
// @Summary      Delete a pack type
// @Tags         lookups
// @Produce      json
// @Param        id  path  int  true  "Pack type ID"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/packtypes/{id} [delete]
func DeletePackType(db *gorm.DB) gin.HandlerFunc {
	return deleteLookup(db, func(q *gorm.DB, id int) *gorm.DB {
		return q.Delete(&models.PackType{}, id)
	}, "Pack type")
}

// CreateClient godoc
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body  models.Client  true  "Client payload"
// @Success      201  {object}  models.APIResponse
// @Router       /api/s1/clients [post]
func CreateClient(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var client models.Client
		if err := c.ShouldBindJSON(&client); err != nil || strings.TrimSpace(client.ClientName) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Required fields missing"})
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		if err := db.WithContext(ctx).Create(&client).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Client created", "data": client})
	}
}

// UpdateClient godoc
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path  int            true  "Client ID"
// @Param        body  body  models.Client  true  "Client payload"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/clients/{id} [put]
func UpdateClient(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientID, ok := pathID(c, "id")
		if !ok {
			return
		}
		var payload models.Client
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		var client models.Client
		if err := db.WithContext(ctx).First(&client, clientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Client not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}

		payload.ID = client.ID
		if err := db.WithContext(ctx).Model(&client).Updates(&payload).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Client updated", "data": client})
	}
}

// GetClients godoc
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/clients [get]
func GetClients(db *gorm.DB) gin.HandlerFunc {
	return listLookup(func(ctx *gin.Context, q *gorm.DB) (interface{}, error) {
		var clients []models.Client
		err := q.Order("client_name").Find(&clients).Error
		return clients, err
	}, db)
}

// DeleteClient godoc
// @Summary      Delete a client
// @Tags         clients
// @Produce      json
// @Param        id  path  int  true  "Client ID"
// @Success      200  {object}  models.APIResponse
// @Failure      404  {object}  models.APIResponse
// @Router       /api/s1/clients/{id} [delete]
func DeleteClient(db *gorm.DB) gin.HandlerFunc {
	return deleteLookup(db, func(q *gorm.DB, id int) *gorm.DB {
		return q.Delete(&models.Client{}, id)
	}, "Client")
}

// GetCompanyInfo godoc
// @Summary      Get the company profile used on documents
// @Tags         company
// @Produce      json
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/company [get]
func GetCompanyInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		var info models.CompanyInfo
		if err := db.WithContext(ctx).First(&info).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Company profile not set"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": info})
	}
}

// UpsertCompanyInfo godoc
// @Summary      Create or replace the company profile
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        body  body  models.CompanyInfo  true  "Company payload"
// @Success      200  {object}  models.APIResponse
// @Router       /api/s1/company [put]
func UpsertCompanyInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload models.CompanyInfo
		if err := c.ShouldBindJSON(&payload); err != nil || strings.TrimSpace(payload.CompanyName) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Required fields missing"})
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		var info models.CompanyInfo
		err := db.WithContext(ctx).First(&info).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := db.WithContext(ctx).Create(&payload).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
				return
			}
			info = payload
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		default:
			payload.ID = info.ID
			if err := db.WithContext(ctx).Model(&info).Updates(&payload).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Company profile saved", "data": info})
	}
}

func listLookup(load func(c *gin.Context, q *gorm.DB) (interface{}, error), db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		data, err := load(c, db.WithContext(ctx))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
	}
}

func deleteLookup(db *gorm.DB, del func(q *gorm.DB, id int) *gorm.DB, label string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}

		ctx, cancel := utils.DefaultQueryContext(c.Request.Context())
		defer cancel()

		res := del(db.WithContext(ctx), id)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": label + " not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": label + " deleted"})
	}
}
