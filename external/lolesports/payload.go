package lolesports

type leaguesEnvelope struct {
	Data struct {
		Leagues []leagueItem `json:"leagues"`
	} `json:"data"`
}

type leagueItem struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Region   string `json:"region"`
	Image    string `json:"image"`
	Priority int    `json:"priority"`
}

type tournamentsEnvelope struct {
	Data struct {
		Leagues []struct {
			Tournaments []tournamentItem `json:"tournaments"`
		} `json:"leagues"`
	} `json:"data"`
}

type tournamentItem struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type teamsEnvelope struct {
	Data struct {
		Teams []teamItem `json:"teams"`
	} `json:"data"`
}

type teamItem struct {
	ID               string `json:"id"`
	Slug             string `json:"slug"`
	Name             string `json:"name"`
	Code             string `json:"code"`
	Image            string `json:"image"`
	AlternativeImage string `json:"alternativeImage"`
	HomeLeague       *struct {
		Name   string `json:"name"`
		Region string `json:"region"`
	} `json:"homeLeague"`
	Players []playerItem `json:"players"`
}

type playerItem struct {
	ID           string `json:"id"`
	SummonerName string `json:"summonerName"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Image        string `json:"image"`
	Role         string `json:"role"`
}

type eventDetailsEnvelope struct {
	Data struct {
		Event *struct {
			ID         string `json:"id"`
			Tournament *struct {
				ID string `json:"id"`
			} `json:"tournament"`
			Match *struct {
				Games []eventGameItem `json:"games"`
			} `json:"match"`
		} `json:"event"`
	} `json:"data"`
}

type eventGameItem struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
	State  string `json:"state"`
}

type gamesEnvelope struct {
	Data struct {
		Games []struct {
			ID    string `json:"id"`
			State string `json:"state"`
		} `json:"games"`
	} `json:"data"`
}

type scheduleEnvelope struct {
	Data struct {
		Schedule struct {
			Pages struct {
				Older *string `json:"older"`
				Newer *string `json:"newer"`
			} `json:"pages"`
			Events []scheduleEvent `json:"events"`
		} `json:"schedule"`
	} `json:"data"`
}

type scheduleEvent struct {
	StartTime string `json:"startTime"`
	State     string `json:"state"`
	Type      string `json:"type"`
	BlockName string `json:"blockName"`
	League    struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"league"`
	Match *struct {
		ID       string `json:"id"`
		Strategy struct {
			Type  string `json:"type"`
			Count int    `json:"count"`
		} `json:"strategy"`
		Teams []struct {
			Name string `json:"name"`
			Code string `json:"code"`
		} `json:"teams"`
	} `json:"match"`
}

type windowEnvelope struct {
	EsportsGameID  string `json:"esportsGameId"`
	EsportsMatchID string `json:"esportsMatchId"`
	GameMetadata   *struct {
		PatchVersion     string        `json:"patchVersion"`
		BlueTeamMetadata *teamMetadata `json:"blueTeamMetadata"`
		RedTeamMetadata  *teamMetadata `json:"redTeamMetadata"`
	} `json:"gameMetadata"`
}

type teamMetadata struct {
	EsportsTeamID       string                `json:"esportsTeamId" validate:"required"`
	ParticipantMetadata []participantMetadata `json:"participantMetadata" validate:"len=5,dive"`
}

type participantMetadata struct {
	ParticipantID   int    `json:"participantId" validate:"min=1,max=10"`
	EsportsPlayerID string `json:"esportsPlayerId"`
	SummonerName    string `json:"summonerName" validate:"required"`
	ChampionID      string `json:"championId" validate:"required"`
	Role            string `json:"role" validate:"required"`
}

type detailsEnvelope struct {
	Frames []struct {
		Timestamp    string             `json:"rfc460Timestamp"`
		Participants []participantFrame `json:"participants"`
	} `json:"frames"`
}

type participantFrame struct {
	ParticipantID       int     `json:"participantId"`
	Level               int     `json:"level"`
	Kills               int     `json:"kills"`
	Deaths              int     `json:"deaths"`
	Assists             int     `json:"assists"`
	TotalGoldEarned     int     `json:"totalGoldEarned"`
	CreepScore          int     `json:"creepScore"`
	KillParticipation   float64 `json:"killParticipation"`
	ChampionDamageShare float64 `json:"championDamageShare"`
	WardsPlaced         int     `json:"wardsPlaced"`
	WardsDestroyed      int     `json:"wardsDestroyed"`
}
