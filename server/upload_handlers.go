package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/wayvee/errors"
	"github.com/techagentng/wayvee/server/response"
)

func (s *Server) handleUploadStayImages() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}
		if !user.IsAgent {
			response.JSON(c, "only agents can upload stay images", http.StatusForbidden, nil, errors.New("only agents can upload stay images", http.StatusForbidden))
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		files := form.File["images"]
		if len(files) == 0 {
			response.JSON(c, "no images provided", http.StatusBadRequest, nil, errors.ErrBadRequest)
			return
		}

		uploaded, svcErr := s.MediaService.UploadImages(files)
		if svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "images uploaded successfully", http.StatusCreated, uploaded, nil)
	}
}

func (s *Server) handleUploadGovernmentID() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := currentUser(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errors.ErrUnauthorized)
			return
		}

		file, err := c.FormFile("government_id")
		if err != nil {
			response.JSON(c, "government_id file is required", http.StatusBadRequest, nil, err)
			return
		}

		image, svcErr := s.MediaService.UploadGovernmentID(user.ID, file)
		if svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		if svcErr := s.AuthService.SetGovernmentID(user.ID, image.Key); svcErr != nil {
			response.JSON(c, "", svcErr.Status, nil, svcErr)
			return
		}
		response.JSON(c, "government id uploaded successfully", http.StatusOK, image, nil)
	}
}
