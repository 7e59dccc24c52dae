package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/meupedido/meu-pedido-api/config"
	"github.com/meupedido/meu-pedido-api/models"
	"github.com/meupedido/meu-pedido-api/services"
	"github.com/meupedido/meu-pedido-api/utils"
)

// UploadImagemProduto handles POST /api/produtos/:id/imagem receiving a
// multipart form with the image under the "imagem" field. A previous image
// is replaced and removed from storage.
func UploadImagemProduto(c *gin.Context) {
	svc := services.GetImageService()
	if svc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"erro": "Armazenamento de imagens não configurado"})
		return
	}

	db := config.GetDB()

	var produto models.Produto
	if err := db.First(&produto, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Produto não encontrado"})
		return
	}

	fileHeader, err := c.FormFile("imagem")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"erro": "Arquivo de imagem é obrigatório"})
		return
	}

	s3Key, err := svc.UploadImage(fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			c.JSON(http.StatusBadRequest, gin.H{"erro": uploadErr.Message})
			return
		}
		logrus.WithError(err).Error("erro ao enviar imagem do produto")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao enviar imagem"})
		return
	}

	chaveAnterior := produto.ImagemS3Key
	if err := db.Model(&produto).Update("imagem_s3_key", s3Key).Error; err != nil {
		logrus.WithError(err).Error("erro ao salvar imagem do produto")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao salvar imagem"})
		return
	}

	if chaveAnterior != nil && *chaveAnterior != "" {
		if err := svc.DeleteImage(*chaveAnterior); err != nil {
			logrus.WithError(err).Warn("erro ao remover imagem anterior")
		}
	}

	produto.ImagemS3Key = &s3Key
	preencherImagemURL(&produto)

	c.JSON(http.StatusOK, gin.H{
		"mensagem":   "Imagem enviada com sucesso",
		"imagem_url": produto.ImagemURL,
	})
}

// DeletarImagemProduto handles DELETE /api/produtos/:id/imagem
func DeletarImagemProduto(c *gin.Context) {
	svc := services.GetImageService()
	if svc == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"erro": "Armazenamento de imagens não configurado"})
		return
	}

	db := config.GetDB()

	var produto models.Produto
	if err := db.First(&produto, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Produto não encontrado"})
		return
	}

	if produto.ImagemS3Key == nil || *produto.ImagemS3Key == "" {
		c.JSON(http.StatusNotFound, gin.H{"erro": "Produto não possui imagem"})
		return
	}

	if err := svc.DeleteImage(*produto.ImagemS3Key); err != nil {
		logrus.WithError(err).Error("erro ao remover imagem do produto")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao remover imagem"})
		return
	}

	if err := db.Model(&produto).Update("imagem_s3_key", nil).Error; err != nil {
		logrus.WithError(err).Error("erro ao limpar imagem do produto")
		c.JSON(http.StatusInternalServerError, gin.H{"erro": "Erro ao remover imagem"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"mensagem": "Imagem removida com sucesso"})
}
