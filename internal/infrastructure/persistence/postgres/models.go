package postgres

// UserModel é o model GORM para usuários
type UserModel struct {
	ID             string  `gorm:"type:uuid;primary_key"`
	FirstName      string  `gorm:"type:varchar(255);not null"`
	LastName       string  `gorm:"type:varchar(255);not null"`
	Email          *string `gorm:"type:varchar(255);uniqueIndex"` // nulo para usuários analógicos
	IdentityNumber *string `gorm:"type:varchar(64)"`
	Role           string  `gorm:"type:varchar(50);not null;index"`
	Enabled        bool    `gorm:"not null;default:true"`
	CreatedAt      int64   `gorm:"not null;index"`
}

func (UserModel) TableName() string {
	return "users"
}

// ConsultationModel é o model GORM para pré-consultas
type ConsultationModel struct {
	ID          string         `gorm:"type:uuid;primary_key"`
	Subject     string         `gorm:"type:varchar(500);not null"`
	Description string         `gorm:"type:text;not null"`
	Active      bool           `gorm:"not null;index"`
	AuthorID    string         `gorm:"type:uuid;not null;index"`
	Author      *UserModel     `gorm:"foreignKey:AuthorID"`
	CreatedAt   int64          `gorm:"not null;index"`
	Comments    []CommentModel `gorm:"foreignKey:ConsultationID"`
}

func (ConsultationModel) TableName() string {
	return "preconsultations"
}

// CommentModel é o model GORM para comentários.
// CreatedAt em nanossegundos Unix: a ordenação cronológica das listas de
// leitura precisa ser estável mesmo para comentários no mesmo segundo.
type CommentModel struct {
	ID             string          `gorm:"type:uuid;primary_key"`
	Content        string          `gorm:"type:text;not null"`
	AuthorID       string          `gorm:"type:uuid;not null;index"`
	Author         *UserModel      `gorm:"foreignKey:AuthorID"`
	ConsultationID string          `gorm:"type:uuid;not null;index"`
	Blocked        bool            `gorm:"not null;index"`
	CreatedAt      int64           `gorm:"not null;index"`
	Approvals      []ApprovalModel `gorm:"foreignKey:CommentID"`
}

func (CommentModel) TableName() string {
	return "comments"
}

// ApprovalModel é uma linha do conjunto de aprovações de um comentário.
// A chave primária composta torna impossível duplicar o voto de um usuário.
type ApprovalModel struct {
	CommentID string `gorm:"type:uuid;primaryKey"`
	UserID    string `gorm:"type:uuid;primaryKey"`
	CreatedAt int64  `gorm:"not null"`
}

func (ApprovalModel) TableName() string {
	return "comment_approvals"
}
