package model

import "time"

// DeployedContract describes one contract of a deployment.
type DeployedContract struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Symbol  string `json:"symbol,omitempty"`
}

// DeploymentContracts groups the contracts published by a deployment.
type DeploymentContracts struct {
	Token       *DeployedContract `json:"token,omitempty"`
	Mining      *DeployedContract `json:"mining,omitempty"`
	Faucet      *DeployedContract `json:"faucet,omitempty"`
	MultiSig    *DeployedContract `json:"multiSig,omitempty"`
	AuditLogger *DeployedContract `json:"auditLogger,omitempty"`
}

// DeploymentConfiguration records constructor parameters.
type DeploymentConfiguration struct {
	InitialSupply    string `json:"initialSupply,omitempty"`
	MaxSupply        string `json:"maxSupply,omitempty"`
	FaucetFunding    string `json:"faucetFunding,omitempty"`
	MiningBaseReward string `json:"miningBaseReward,omitempty"`
}

// Deployment is a record front-ends use to discover contract addresses.
type Deployment struct {
	Timestamp     time.Time                `json:"timestamp"`
	Deployer      string                   `json:"deployer"`
	ChainID       uint64                   `json:"chainId"`
	NetworkName   string                   `json:"networkName"`
	Contracts     DeploymentContracts      `json:"contracts"`
	Configuration *DeploymentConfiguration `json:"configuration,omitempty"`
}
