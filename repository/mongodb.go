package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/santabrisa/crm-server/models"
	"github.com/santabrisa/crm-server/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	// Colecciones
	TeamMembersCollection      = "teamMembers"
	AccountsCollection         = "accounts"
	InteractionsCollection     = "interactions"
	MaterialsCollection        = "materials"
	InventoryBatchesCollection = "inventoryBatches"
	InventoryRecordsCollection = "inventoryRecords"
	ProductionRunsCollection   = "productionRuns"
	PurchasesCollection        = "purchases"
	ApiOperationLogsCollection = "apiOperationLogs"
)

var (
	client *mongo.Client
	db     *mongo.Database
	ctx    = context.Background()
)

// InitMongoDB inicializa la conexion a MongoDB.
func InitMongoDB(uri, dbName string) error {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	clientOptions := options.Client().ApplyURI(uri)
	client, err = mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return fmt.Errorf("error conectando a MongoDB: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("error en ping a MongoDB: %w", err)
	}

	db = client.Database(dbName)
	utils.Logger.Info().Str("database", dbName).Msg("conectado a MongoDB")

	return nil
}

// CloseMongoDB cierra la conexion.
func CloseMongoDB() {
	if client != nil {
		if err := client.Disconnect(ctx); err != nil {
			utils.Logger.Error().Err(err).Msg("error desconectando de MongoDB")
			return
		}
		utils.Logger.Info().Msg("desconectado de MongoDB")
	}
}

// Collection devuelve la coleccion indicada.
func Collection(name string) *mongo.Collection {
	return db.Collection(name)
}

// GetContext devuelve el contexto base para operaciones de MongoDB.
func GetContext() context.Context {
	return ctx
}

// ExecuteDbOperation ejecuta una operacion con reintentos para errores
// transitorios.
func ExecuteDbOperation(operation func() (interface{}, error), retries int) (interface{}, error) {
	if retries <= 0 {
		retries = 3
	}

	var lastErr error
	for i := 0; i < retries; i++ {
		result, err := operation()
		if err == nil {
			return result, nil
		}

		lastErr = err
		utils.Logger.Error().Err(err).Msgf("operacion de base de datos fallida, reintento (%d/%d)", i+1, retries)

		if !isRetryableError(err) {
			break
		}

		time.Sleep(time.Duration(500*(i+1)) * time.Millisecond)
	}

	return nil, lastErr
}

// isRetryableError determina si el error admite reintento.
func isRetryableError(err error) bool {
	retryableCodes := map[int]bool{
		6:     true, // HostUnreachable
		7:     true, // HostNotFound
		89:    true, // NetworkTimeout
		91:    true, // ShutdownInProgress
		189:   true, // PrimarySteppedDown
		10107: true, // NotMaster
		13436: true, // NotMasterNoSlaveOk
		11600: true, // InterruptedAtShutdown
		11602: true, // InterruptedDueToReplStateChange
		10058: true, // ConnectionReset
	}

	if cmdErr, ok := err.(mongo.CommandError); ok {
		return retryableCodes[int(cmdErr.Code)]
	}

	return isNetworkError(err)
}

// isNetworkError detecta errores de red habituales.
func isNetworkError(err error) bool {
	errMsg := strings.ToLower(err.Error())
	networkErrors := []string{
		"connection refused",
		"connection reset",
		"connection closed",
		"no reachable servers",
		"timeout",
		"context deadline exceeded",
		"server selection error",
	}

	for _, ne := range networkErrors {
		if strings.Contains(errMsg, ne) {
			return true
		}
	}

	return false
}

// InitializeCollections crea las colecciones que falten.
func InitializeCollections() error {
	collections := []string{
		TeamMembersCollection,
		AccountsCollection,
		InteractionsCollection,
		MaterialsCollection,
		InventoryBatchesCollection,
		InventoryRecordsCollection,
		ProductionRunsCollection,
		PurchasesCollection,
		ApiOperationLogsCollection,
	}

	for _, collName := range collections {
		collExists, err := CollectionExists(collName)
		if err != nil {
			return fmt.Errorf("error comprobando coleccion: %w", err)
		}

		if !collExists {
			if err := db.CreateCollection(ctx, collName); err != nil {
				return fmt.Errorf("error creando coleccion: %w", err)
			}
			utils.Logger.Info().Str("collection", collName).Msg("coleccion creada")
		}
	}

	return nil
}

// CollectionExists comprueba si la coleccion existe.
func CollectionExists(collName string) (bool, error) {
	collections, err := db.ListCollectionNames(ctx, bson.M{"name": collName})
	if err != nil {
		return false, err
	}

	for _, name := range collections {
		if name == collName {
			return true, nil
		}
	}

	return false, nil
}

// InitializeAdminAccount crea el administrador por defecto si no existe
// ningun ADMIN.
func InitializeAdminAccount() error {
	membersCollection := db.Collection(TeamMembersCollection)

	count, err := membersCollection.CountDocuments(ctx, bson.M{"role": models.UserRoleADMIN})
	if err != nil {
		return fmt.Errorf("error comprobando cuenta de administrador: %w", err)
	}

	if count > 0 {
		return nil
	}

	admin := models.TeamMember{
		Name:      "admin",
		Email:     "admin@santabrisa.co",
		Password:  utils.HashPassword("admin123"),
		Role:      models.UserRoleADMIN,
		Status:    models.UserStatusAPPROVED,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	_, err = membersCollection.InsertOne(ctx, admin)
	if err != nil {
		return fmt.Errorf("error creando cuenta de administrador: %w", err)
	}

	utils.Logger.Info().Msg("cuenta de administrador por defecto creada")
	return nil
}

// GetDatabaseStatus devuelve recuentos por coleccion.
func GetDatabaseStatus() (map[string]interface{}, error) {
	collections := []string{
		TeamMembersCollection,
		AccountsCollection,
		InteractionsCollection,
		MaterialsCollection,
		InventoryBatchesCollection,
		InventoryRecordsCollection,
		ProductionRunsCollection,
		PurchasesCollection,
		ApiOperationLogsCollection,
	}

	result := make(map[string]interface{})

	for _, collName := range collections {
		coll := db.Collection(collName)
		count, err := coll.CountDocuments(ctx, bson.M{})
		if err != nil {
			utils.Logger.Error().Err(err).Str("collection", collName).Msg("error contando documentos")
			result[collName] = map[string]interface{}{
				"count": 0,
				"error": err.Error(),
			}
			continue
		}
		result[collName] = map[string]interface{}{
			"count": count,
		}
	}

	return result, nil
}

// LoadCarteraInputs carga cuentas, interacciones y equipo completos. Es
// la carga comun del calculo de cartera: la cartera se deriva siempre
// desde cero sobre estas tres colecciones.
func LoadCarteraInputs(ctx context.Context) ([]models.Account, []models.Interaction, []models.TeamMember, error) {
	var accounts []models.Account
	cursor, err := db.Collection(AccountsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error cargando cuentas: %w", err)
	}
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, nil, nil, fmt.Errorf("error decodificando cuentas: %w", err)
	}

	var interactions []models.Interaction
	cursor, err = db.Collection(InteractionsCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error cargando interacciones: %w", err)
	}
	if err := cursor.All(ctx, &interactions); err != nil {
		return nil, nil, nil, fmt.Errorf("error decodificando interacciones: %w", err)
	}

	var team []models.TeamMember
	cursor, err = db.Collection(TeamMembersCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error cargando equipo: %w", err)
	}
	if err := cursor.All(ctx, &team); err != nil {
		return nil, nil, nil, fmt.Errorf("error decodificando equipo: %w", err)
	}

	return accounts, interactions, team, nil
}

// FindTeamMemberByID busca un miembro del equipo por id.
func FindTeamMemberByID(id string) (*models.TeamMember, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("formato de id no valido: %w", err)
	}

	var member models.TeamMember
	err = db.Collection(TeamMembersCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&member)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("miembro del equipo no encontrado")
		}
		return nil, err
	}

	return &member, nil
}
