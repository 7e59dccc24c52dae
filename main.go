package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/meupedido/meu-pedido-api/config"
	"github.com/meupedido/meu-pedido-api/controllers"
	"github.com/meupedido/meu-pedido-api/middleware"
	"github.com/meupedido/meu-pedido-api/models"
	"github.com/meupedido/meu-pedido-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("configuração inválida")
	}
	config.SetConfig(cfg)

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
	if cfg.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	logrus.Info("Iniciando Meu Pedido API...")

	if err := config.ConnectDatabase(); err != nil {
		logrus.WithError(err).Fatal("falha ao conectar no banco de dados")
	}

	db := config.GetDB()
	if err := models.AutoMigrate(db); err != nil {
		logrus.WithError(err).Fatal("falha ao migrar o banco de dados")
	}
	if err := models.SeedTenantPadrao(db); err != nil {
		logrus.WithError(err).Fatal("falha ao criar tenant padrão")
	}

	if cfg.HasS3() {
		s3Service, err := services.InitS3Service()
		if err != nil {
			logrus.WithError(err).Fatal("falha ao inicializar o S3")
		}
		services.InitImageService(s3Service)
		logrus.Info("Armazenamento de imagens configurado")
	} else {
		logrus.Warn("AWS não configurada, upload de imagens desabilitado")
	}

	router := setupRouter(cfg)

	addr := ":" + cfg.Port
	logrus.WithField("porta", cfg.Port).Info("Servidor no ar")
	if err := router.Run(addr); err != nil {
		logrus.WithError(err).Fatal("falha ao iniciar o servidor")
	}
}

// setupRouter assembles the HTTP surface. Admin mutations go through the
// token middleware, storefront reads are public and subdomain routes resolve
// the tenant before the handler runs.
func setupRouter(cfg *config.Config) *gin.Engine {
	if cfg.IsTest() {
		gin.SetMode(gin.TestMode)
	}
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", healthCheck)
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"mensagem": "Meu Pedido API"})
	})

	admin := middleware.RequireAdminToken(cfg)
	tenant := middleware.ResolveTenant()

	api := router.Group("/api")
	{
		api.GET("/teste", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"mensagem": "API funcionando"})
		})

		// storefront
		api.GET("/cardapio/:subdominio", tenant, controllers.ListarCardapio)
		api.GET("/config/:subdominio", tenant, controllers.BuscarConfigLoja)
		api.GET("/horarios/:subdominio", tenant, controllers.ListarHorarios)
		api.GET("/horarios/disponibilidade/:subdominio", tenant, controllers.DisponibilidadeDelivery)
		api.POST("/pedidos", controllers.CriarPedido)

		// catálogo
		api.GET("/produtos", controllers.ListarProdutos)
		api.POST("/produtos", admin, controllers.CriarProduto)
		api.POST("/produtos/lote", admin, controllers.CriarProdutosLote)
		api.PUT("/produtos/lote/preco", admin, controllers.AtualizarPrecosLote)
		api.GET("/produtos/estatisticas/:subdominio", tenant, controllers.EstatisticasProdutos)
		api.GET("/produtos/:id", controllers.BuscarProduto)
		api.PUT("/produtos/:id", admin, controllers.AtualizarProduto)
		api.PATCH("/produtos/:id/disponivel", admin, controllers.AtualizarDisponibilidadeProduto)
		api.DELETE("/produtos/:id", admin, controllers.DeletarProduto)
		api.POST("/produtos/:id/imagem", admin, controllers.UploadImagemProduto)
		api.DELETE("/produtos/:id/imagem", admin, controllers.DeletarImagemProduto)

		api.GET("/categorias", controllers.ListarCategorias)
		api.POST("/categorias", admin, controllers.CriarCategoria)
		api.PUT("/categorias/:id", admin, controllers.AtualizarCategoria)
		api.DELETE("/categorias/:id", admin, controllers.DeletarCategoria)

		api.GET("/complementos", controllers.ListarComplementos)
		api.POST("/complementos", admin, controllers.CriarComplemento)
		api.PUT("/complementos/:id", admin, controllers.AtualizarComplemento)
		api.DELETE("/complementos/:id", admin, controllers.DeletarComplemento)
		api.GET("/complementos/produto/:produtoId", controllers.ListarComplementosProduto)

		api.GET("/grupos-complementos", controllers.ListarGrupos)
		api.POST("/grupos-complementos", admin, controllers.CriarGrupo)
		api.PUT("/grupos-complementos/:id", admin, controllers.AtualizarGrupo)
		api.DELETE("/grupos-complementos/:id", admin, controllers.DeletarGrupo)
		api.GET("/grupos-complementos/:id/itens", controllers.ListarItensGrupo)
		api.POST("/grupos-complementos/:id/itens", admin, controllers.AdicionarItemGrupo)
		api.PUT("/grupos-complementos/:id/itens/ordem", admin, controllers.ReordenarItensGrupo)
		api.DELETE("/grupos-complementos/:id/itens/:complementoId", admin, controllers.RemoverItemGrupo)

		// gestão da loja
		api.PUT("/config/:subdominio", admin, tenant, controllers.AtualizarConfigLoja)
		api.PUT("/horarios/:subdominio", admin, tenant, controllers.AtualizarHorarios)

		// gestão de pedidos
		api.GET("/pedidos/:subdominio", admin, tenant, controllers.ListarPedidos)
		api.GET("/pedidos/:subdominio/:id", admin, tenant, controllers.BuscarPedido)
		api.PUT("/pedidos/:subdominio/:id/status", admin, tenant, controllers.AtualizarStatusPedido)
		api.DELETE("/pedidos/:subdominio/:id", admin, tenant, controllers.DeletarPedido)
		api.GET("/dashboard/:subdominio", admin, tenant, controllers.Dashboard)
	}

	return router
}

// healthCheck reports service and database health
func healthCheck(c *gin.Context) {
	status := gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if db := config.GetDB(); db != nil {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Ping(); err == nil {
				status["banco"] = "conectado"
			} else {
				status["banco"] = "indisponível"
			}
		}
	}

	c.JSON(http.StatusOK, status)
}
